package user

import (
	"context"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
)

type serviceMock struct {
	Service
}

// NewServiceMock returns a Service whose password reset mail is sent
// synchronously so tests can assert on the mail outbox.
func NewServiceMock(repo Repository, mailSvc core.EmailService, logger core.Logger) ServiceInterface {
	return &serviceMock{
		Service: Service{
			repo:    repo,
			mailSvc: mailSvc,
			logger:  logger,
		},
	}
}

func (svc *serviceMock) RequestPasswordReset(ctx context.Context, email string) error {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !usr.Active() {
		return ErrNotFound
	}
	// run synchronously
	svc.sendPasswordResetMail(usr)
	return nil
}
