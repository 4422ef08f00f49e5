package allowlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
)

type HTTPRepositoryTestSuite struct {
	suite.Suite
	lastRequest *http.Request
	payload     string
	status      int
	server      *httptest.Server
}

func (s *HTTPRepositoryTestSuite) SetupTest() {
	s.payload = `{"validPasswords":["a1","B2"]}`
	s.status = http.StatusOK
	s.lastRequest = nil

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lastRequest = r
		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(s.payload))
	}))
}

func (s *HTTPRepositoryTestSuite) TearDownTest() {
	s.server.Close()
}

func TestHTTPRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(HTTPRepositoryTestSuite))
}

func (s *HTTPRepositoryTestSuite) newRepo() Repository {
	repo, err := NewHTTP(&Config{
		URL:        s.server.URL + "/passwords.json",
		HTTPClient: s.server.Client(),
	})
	s.Require().NoError(err)
	return repo
}

func (s *HTTPRepositoryTestSuite) TestFetchReturnsPublishedCredentials() {
	output, err := s.newRepo().Fetch(context.Background(), &FetchInput{})
	s.Require().NoError(err)
	s.Equal([]string{"a1", "B2"}, output.Credentials)
}

func (s *HTTPRepositoryTestSuite) TestFetchBypassesCaches() {
	_, err := s.newRepo().Fetch(context.Background(), &FetchInput{})
	s.Require().NoError(err)

	s.Require().NotNil(s.lastRequest)
	s.NotEmpty(s.lastRequest.URL.Query().Get("ts"))
	s.Equal("no-store", s.lastRequest.Header.Get("Cache-Control"))
}

func (s *HTTPRepositoryTestSuite) TestMissingFieldNormalizesToEmpty() {
	s.payload = `{}`

	output, err := s.newRepo().Fetch(context.Background(), &FetchInput{})
	s.Require().NoError(err)
	s.Empty(output.Credentials)
	s.NotNil(output.Credentials)
}

func (s *HTTPRepositoryTestSuite) TestNonArrayFieldNormalizesToEmpty() {
	s.payload = `{"validPasswords":"not-a-list"}`

	output, err := s.newRepo().Fetch(context.Background(), &FetchInput{})
	s.Require().NoError(err)
	s.Empty(output.Credentials)
}

func (s *HTTPRepositoryTestSuite) TestNullFieldNormalizesToEmpty() {
	s.payload = `{"validPasswords":null}`

	output, err := s.newRepo().Fetch(context.Background(), &FetchInput{})
	s.Require().NoError(err)
	s.Empty(output.Credentials)
}

func (s *HTTPRepositoryTestSuite) TestServerErrorFailsFetch() {
	s.status = http.StatusInternalServerError

	_, err := s.newRepo().Fetch(context.Background(), &FetchInput{})
	s.Require().Error(err)
}

func (s *HTTPRepositoryTestSuite) TestUndecodableBodyFailsFetch() {
	s.payload = `<html>not json</html>`

	_, err := s.newRepo().Fetch(context.Background(), &FetchInput{})
	s.Require().Error(err)
}

func (s *HTTPRepositoryTestSuite) TestConfigValidation() {
	_, err := NewHTTP(nil)
	s.Require().Error(err)

	_, err = NewHTTP(&Config{})
	s.Require().Error(err)
}
