package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/activities-client/internal/dependencies/mocks"
	"github.com/mcoot/activities-client/internal/model"
	"github.com/mcoot/activities-client/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC))
	s.service = New(s.clock, DefaultTTL, testutil.NopLogger())
}

func (s *ServiceSuite) TestNothingVisibleInitially() {
	_, ok := s.service.Current()
	s.False(ok)
}

func (s *ServiceSuite) TestShowIsVisibleImmediately() {
	n := s.service.Show("Signed up", model.NotificationSuccess)

	current, ok := s.service.Current()
	s.Require().True(ok)
	s.Equal(n, current)
	s.Equal("Signed up", current.Text)
	s.Equal(model.NotificationSuccess, current.Kind)
	s.Equal(s.clock.Now().Add(5*time.Second), current.ExpiresAt)
}

func (s *ServiceSuite) TestHidesAfterTTL() {
	s.service.Show("Signed up", model.NotificationSuccess)

	s.clock.Advance(4999 * time.Millisecond)
	_, ok := s.service.Current()
	s.True(ok)

	s.clock.Advance(time.Millisecond)
	_, ok = s.service.Current()
	s.False(ok)
}

func (s *ServiceSuite) TestNewNotificationReplacesAndResetsTimer() {
	s.service.Show("first", model.NotificationSuccess)
	s.clock.Advance(4 * time.Second)

	s.service.Show("second", model.NotificationError)
	s.Equal(1, s.clock.PendingTimers())

	// The first timer would have fired here
	s.clock.Advance(2 * time.Second)
	current, ok := s.service.Current()
	s.Require().True(ok)
	s.Equal("second", current.Text)
	s.Equal(model.NotificationError, current.Kind)

	s.clock.Advance(3 * time.Second)
	_, ok = s.service.Current()
	s.False(ok)
}

func (s *ServiceSuite) TestStaleHideIsIgnored() {
	s.service.Show("first", model.NotificationSuccess)
	s.service.hide(s.service.seq)
	s.service.Show("second", model.NotificationSuccess)

	// A hide for an older sequence must not clear the newer message
	s.service.hide(1)
	current, ok := s.service.Current()
	s.Require().True(ok)
	s.Equal("second", current.Text)
}

func (s *ServiceSuite) TestSubscribersSeeShowAndHide() {
	var seen []string
	s.service.Subscribe(func(n *model.Notification) {
		if n == nil {
			seen = append(seen, "<hidden>")
			return
		}
		seen = append(seen, n.Text)
	})

	s.service.Show("one", model.NotificationSuccess)
	s.service.Show("two", model.NotificationSuccess)
	s.clock.Advance(DefaultTTL)

	s.Equal([]string{"one", "two", "<hidden>"}, seen)
}

func (s *ServiceSuite) TestCustomTTL() {
	svc := New(s.clock, time.Second, testutil.NopLogger())
	svc.Show("short", model.NotificationSuccess)

	s.clock.Advance(time.Second)
	_, ok := svc.Current()
	s.False(ok)
}

func (s *ServiceSuite) TestNonPositiveTTLUsesDefault() {
	svc := New(s.clock, 0, testutil.NopLogger())
	n := svc.Show("x", model.NotificationSuccess)
	s.Equal(s.clock.Now().Add(DefaultTTL), n.ExpiresAt)
}
