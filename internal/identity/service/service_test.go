package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"foodbridge/internal/identity/models"
	"foodbridge/internal/identity/store"
	"foodbridge/internal/identity/token"
	"foodbridge/pkg/domain"
	dErrors "foodbridge/pkg/domain-errors"
)

type IdentitySuite struct {
	suite.Suite
	service *Service
	ctx     context.Context
}

func (s *IdentitySuite) SetupTest() {
	users := store.NewInMemoryUserStore()
	tokens := token.NewManager("test-signing-key", time.Hour)

	svc, err := New(users, tokens)
	s.Require().NoError(err)
	s.service = svc
	s.ctx = context.Background()
}

func TestIdentitySuite(t *testing.T) {
	suite.Run(t, new(IdentitySuite))
}

func (s *IdentitySuite) register(name, email, role string) *models.AuthResponse {
	resp, err := s.service.Register(s.ctx, models.RegisterRequest{
		Name: name, Email: email, Password: "hunter2", Role: role,
	})
	s.Require().NoError(err)
	return resp
}

func (s *IdentitySuite) TestRegisterReturnsTokenAndUser() {
	resp := s.register("Alice Donor", "alice@example.com", "donor")

	s.NotEmpty(resp.Token)
	s.Equal("Alice Donor", resp.User.Name)
	s.Equal(domain.RoleDonor, resp.User.Role)
	s.False(resp.User.ID.IsNil())
	s.NotEmpty(resp.User.PasswordHash, "hash stored on the record")
}

func (s *IdentitySuite) TestRegisterRejectsInvalidRequests() {
	cases := []models.RegisterRequest{
		{Name: "", Email: "a@example.com", Password: "hunter2", Role: "donor"},
		{Name: "A", Email: "not-an-email", Password: "hunter2", Role: "donor"},
		{Name: "A", Email: "a@example.com", Password: "abc", Role: "donor"},
		{Name: "A", Email: "a@example.com", Password: "hunter2", Role: "admin"},
	}
	for _, req := range cases {
		_, err := s.service.Register(s.ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation), "request %+v", req)
	}
}

func (s *IdentitySuite) TestRegisterDuplicateEmailConflicts() {
	s.register("Alice Donor", "alice@example.com", "donor")

	_, err := s.service.Register(s.ctx, models.RegisterRequest{
		Name: "Other Alice", Email: "ALICE@example.com", Password: "hunter2", Role: "recipient",
	})
	s.True(dErrors.HasCode(err, dErrors.CodeConflict), "email match is case-insensitive")
}

func (s *IdentitySuite) TestLoginHappyPath() {
	s.register("Alice Donor", "alice@example.com", "donor")

	resp, err := s.service.Login(s.ctx, models.LoginRequest{
		Email: "alice@example.com", Password: "hunter2",
	})
	s.Require().NoError(err)
	s.NotEmpty(resp.Token)
	s.Equal("Alice Donor", resp.User.Name)
}

func (s *IdentitySuite) TestLoginFailuresAreIndistinguishable() {
	s.register("Alice Donor", "alice@example.com", "donor")

	_, wrongPassword := s.service.Login(s.ctx, models.LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	})
	_, unknownEmail := s.service.Login(s.ctx, models.LoginRequest{
		Email: "nobody@example.com", Password: "hunter2",
	})

	s.True(dErrors.HasCode(wrongPassword, dErrors.CodeUnauthorized))
	s.True(dErrors.HasCode(unknownEmail, dErrors.CodeUnauthorized))
	s.Equal(wrongPassword.Error(), unknownEmail.Error())
}

func (s *IdentitySuite) TestMeReturnsAccount() {
	resp := s.register("Alice Donor", "alice@example.com", "donor")

	user, err := s.service.Me(s.ctx, resp.User.Actor())
	s.Require().NoError(err)
	s.Equal(resp.User.ID, user.ID)

	_, err = s.service.Me(s.ctx, domain.Actor{})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *IdentitySuite) TestSeedDemoUsersIdempotent() {
	s.Require().NoError(s.service.SeedDemoUsers(s.ctx))
	s.Require().NoError(s.service.SeedDemoUsers(s.ctx))

	alice, err := s.service.Login(s.ctx, models.LoginRequest{Email: "alice@example.com", Password: "pass"})
	s.Require().NoError(err)
	s.Equal(domain.RoleDonor, alice.User.Role)

	bob, err := s.service.Login(s.ctx, models.LoginRequest{Email: "bob@example.com", Password: "pass"})
	s.Require().NoError(err)
	s.Equal(domain.RoleRecipient, bob.User.Role)
}
