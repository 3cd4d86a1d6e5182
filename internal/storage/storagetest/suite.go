// Package storagetest holds the behaviour every CredentialStore must share.
package storagetest

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/activities-client/internal/model"
	"github.com/mcoot/activities-client/internal/storage"
)

// CredentialStoreSuite runs the common contract against a backend.
// Embed it and set Store in SetupTest.
type CredentialStoreSuite struct {
	suite.Suite
	Store storage.CredentialStore
	Ctx   context.Context
}

func (s *CredentialStoreSuite) TestLoadEmptyIsAnonymous() {
	creds, err := s.Store.Load(s.Ctx)
	s.Require().NoError(err)
	s.False(creds.Complete())
	s.Equal(model.Credentials{}, creds)
}

func (s *CredentialStoreSuite) TestSaveThenLoad() {
	want := model.Credentials{Token: "tok-1", DisplayName: "mrodriguez"}
	s.Require().NoError(s.Store.Save(s.Ctx, want))

	got, err := s.Store.Load(s.Ctx)
	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *CredentialStoreSuite) TestSaveOverwritesBothValues() {
	s.Require().NoError(s.Store.Save(s.Ctx, model.Credentials{Token: "old", DisplayName: "first"}))
	s.Require().NoError(s.Store.Save(s.Ctx, model.Credentials{Token: "new", DisplayName: "second"}))

	got, err := s.Store.Load(s.Ctx)
	s.Require().NoError(err)
	s.Equal("new", got.Token)
	s.Equal("second", got.DisplayName)
}

func (s *CredentialStoreSuite) TestClearRemovesBothValues() {
	s.Require().NoError(s.Store.Save(s.Ctx, model.Credentials{Token: "tok", DisplayName: "name"}))
	s.Require().NoError(s.Store.Clear(s.Ctx))

	got, err := s.Store.Load(s.Ctx)
	s.Require().NoError(err)
	s.Equal(model.Credentials{}, got)
}

func (s *CredentialStoreSuite) TestClearWhenEmpty() {
	s.NoError(s.Store.Clear(s.Ctx))
}

func (s *CredentialStoreSuite) TestSavePartialLoadsAsAnonymous() {
	s.Require().NoError(s.Store.Save(s.Ctx, model.Credentials{Token: "tok"}))

	got, err := s.Store.Load(s.Ctx)
	s.Require().NoError(err)
	s.False(got.Complete())
}
