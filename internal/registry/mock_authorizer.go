package registry

import (
	"github.com/stretchr/testify/mock"
)

func NewAuthorizerMock() *AuthorizerMock {
	return &AuthorizerMock{}
}

type AuthorizerMock struct {
	mock.Mock
}

func (a *AuthorizerMock) Authorize(caller Identity, role Role) bool {
	args := a.MethodCalled("Authorize", caller, role)
	return args.Bool(0)
}
