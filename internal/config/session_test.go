package config_test

import (
	"testing"

	"github.com/rxtech-lab/synthetic-data-lab/internal/config"
	"github.com/rxtech-lab/synthetic-data-lab/internal/logger"
	"github.com/rxtech-lab/synthetic-data-lab/internal/preset"
	"github.com/rxtech-lab/synthetic-data-lab/internal/schema"
	"github.com/rxtech-lab/synthetic-data-lab/mocks"
	"github.com/rxtech-lab/synthetic-data-lab/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	observer *mocks.MockObserver
	session  *config.Session
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (suite *SessionTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.observer = mocks.NewMockObserver(suite.ctrl)

	session, err := config.NewSession(preset.MustDefaultCatalogs(), config.WithLogger(logger.NewNopLogger()))
	suite.Require().NoError(err)
	suite.session = session
	suite.session.Subscribe(suite.observer)
}

func (suite *SessionTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func changeWhere(fn func(config.Change) bool) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		c, ok := x.(config.Change)
		return ok && fn(c)
	})
}

func (suite *SessionTestSuite) TestNewSessionRequiresCatalogs() {
	_, err := config.NewSession(preset.Catalogs{})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *SessionTestSuite) TestGroups() {
	suite.Equal([]schema.GroupName{schema.GroupPrice, schema.GroupVolume}, suite.session.Groups())

	for _, group := range suite.session.Groups() {
		state, err := suite.session.GetState(group)
		suite.Require().NoError(err)
		suite.Equal(preset.CustomPresetName, state.ActivePreset)
	}
}

func (suite *SessionTestSuite) TestUnknownGroup() {
	_, err := suite.session.GetState("Liquidity")
	suite.True(errors.HasCode(err, errors.ErrCodeUnknownGroup))
	suite.True(errors.HasCode(suite.session.SelectPreset("Liquidity", "Bull Run"), errors.ErrCodeUnknownGroup))
	suite.True(errors.HasCode(suite.session.EditField("Liquidity", "drift", 1.0), errors.ErrCodeUnknownGroup))
	suite.True(errors.HasCode(suite.session.Reset("Liquidity"), errors.ErrCodeUnknownGroup))
}

func (suite *SessionTestSuite) TestFlashCrashScenario() {
	gomock.InOrder(
		suite.observer.EXPECT().OnConfigurationChanged(changeWhere(func(c config.Change) bool {
			return c.Cause == config.CausePreset && c.ActivePreset == "Flash Crash" && c.Values["volatility"] == 150.0
		})).Times(1),
		suite.observer.EXPECT().OnConfigurationChanged(changeWhere(func(c config.Change) bool {
			return c.Cause == config.CauseEdit && c.ActivePreset == preset.CustomPresetName && c.Values["volatility"] == 80.0
		})).Times(1),
	)

	suite.Require().NoError(suite.session.SelectPreset(schema.GroupPrice, "Flash Crash"))

	state, err := suite.session.GetState(schema.GroupPrice)
	suite.Require().NoError(err)
	suite.Equal(150.0, state.Values["volatility"])
	suite.Equal("Flash Crash", state.ActivePreset)

	err = suite.session.EditField(schema.GroupPrice, "volatility", 999.0)
	suite.True(errors.HasCode(err, errors.ErrCodeOutOfRange))

	unchanged, err := suite.session.GetState(schema.GroupPrice)
	suite.Require().NoError(err)
	suite.Equal(state, unchanged)

	suite.Require().NoError(suite.session.EditField(schema.GroupPrice, "volatility", 80.0))

	edited, err := suite.session.GetState(schema.GroupPrice)
	suite.Require().NoError(err)
	suite.Equal(80.0, edited.Values["volatility"])
	suite.Equal(preset.CustomPresetName, edited.ActivePreset)
	suite.Equal(-50.0, edited.Values["drift"])
}

func (suite *SessionTestSuite) TestGroupsAreIndependent() {
	suite.observer.EXPECT().OnConfigurationChanged(gomock.Any()).Times(1)

	suite.Require().NoError(suite.session.SelectPreset(schema.GroupVolume, "Institutional Trading"))

	price, err := suite.session.GetState(schema.GroupPrice)
	suite.Require().NoError(err)
	suite.Equal(schema.PriceGroup().DefaultBundle(), price.Values)
	suite.Equal(preset.CustomPresetName, price.ActivePreset)

	volume, err := suite.session.GetState(schema.GroupVolume)
	suite.Require().NoError(err)
	suite.Equal(int64(25_000_000), volume.Values["base_volume"])
	suite.Equal("Back-Loaded", volume.Values["volume_profile"])
}

func (suite *SessionTestSuite) TestFailedOperationsDoNotNotify() {
	suite.observer.EXPECT().OnConfigurationChanged(gomock.Any()).Times(0)

	suite.Error(suite.session.SelectPreset(schema.GroupPrice, "Tornado"))
	suite.Error(suite.session.EditField(schema.GroupVolume, "base_volume", 12.5))
	suite.Error(suite.session.EditField(schema.GroupVolume, "volume_profile", "flat"))
	suite.NoError(suite.session.SelectPreset(schema.GroupPrice, preset.CustomPresetName))
}

func (suite *SessionTestSuite) TestReset() {
	suite.observer.EXPECT().OnConfigurationChanged(gomock.Any()).Times(1)
	suite.observer.EXPECT().OnConfigurationChanged(changeWhere(func(c config.Change) bool {
		return c.Cause == config.CauseReset
	})).Times(1)

	suite.Require().NoError(suite.session.SelectPreset(schema.GroupVolume, "Retail Frenzy"))
	suite.Require().NoError(suite.session.Reset(schema.GroupVolume))

	state, err := suite.session.GetState(schema.GroupVolume)
	suite.Require().NoError(err)
	suite.Equal(schema.VolumeGroup().DefaultBundle(), state.Values)
	suite.Equal(preset.CustomPresetName, state.ActivePreset)
}

func (suite *SessionTestSuite) TestObserversInSubscriptionOrder() {
	suite.observer.EXPECT().OnConfigurationChanged(gomock.Any()).Times(2)

	var calls []string
	unsubscribeFirst := suite.session.Subscribe(config.ObserverFunc(func(config.Change) {
		calls = append(calls, "first")
	}))
	suite.session.Subscribe(config.ObserverFunc(func(config.Change) {
		calls = append(calls, "second")
	}))

	suite.Require().NoError(suite.session.SelectPreset(schema.GroupPrice, "Bull Run"))
	suite.Equal([]string{"first", "second"}, calls)

	unsubscribeFirst()
	suite.Require().NoError(suite.session.EditField(schema.GroupPrice, "drift", 10))
	suite.Equal([]string{"first", "second", "second"}, calls)
}

func (suite *SessionTestSuite) TestObserverSeesCompletedState() {
	suite.observer.EXPECT().OnConfigurationChanged(gomock.Any()).Times(1)

	var seen config.State
	suite.session.Subscribe(config.ObserverFunc(func(c config.Change) {
		state, err := suite.session.GetState(c.Group)
		suite.Require().NoError(err)
		seen = state
	}))

	suite.Require().NoError(suite.session.SelectPreset(schema.GroupPrice, "Bear Market"))
	suite.Equal("Bear Market", seen.ActivePreset)
	suite.Equal(-30.0, seen.Values["drift"])
	suite.Equal("Bearish", seen.Values["trend_direction"])
}

func (suite *SessionTestSuite) TestObserverCannotMutateDuringNotification() {
	suite.observer.EXPECT().OnConfigurationChanged(gomock.Any()).Times(1)

	var nested error
	suite.session.Subscribe(config.ObserverFunc(func(c config.Change) {
		nested = suite.session.Reset(c.Group)
	}))

	suite.Require().NoError(suite.session.SelectPreset(schema.GroupPrice, "Bull Run"))
	suite.True(errors.HasCode(nested, errors.ErrCodeApplyInProgress))

	state, err := suite.session.GetState(schema.GroupPrice)
	suite.Require().NoError(err)
	suite.Equal("Bull Run", state.ActivePreset)
}

func (suite *SessionTestSuite) TestUnsubscribeDuringNotification() {
	suite.observer.EXPECT().OnConfigurationChanged(gomock.Any()).Times(2)

	count := 0
	var unsubscribe func()
	unsubscribe = suite.session.Subscribe(config.ObserverFunc(func(config.Change) {
		count++
		unsubscribe()
	}))

	suite.Require().NoError(suite.session.SelectPreset(schema.GroupPrice, "Bull Run"))
	suite.Require().NoError(suite.session.SelectPreset(schema.GroupPrice, "Bear Market"))
	suite.Equal(1, count)
}

func (suite *SessionTestSuite) TestObserverCannotMutateOtherGroupDuringNotification() {
	suite.observer.EXPECT().OnConfigurationChanged(gomock.Any()).Times(1)

	var nested error
	suite.session.Subscribe(config.ObserverFunc(func(config.Change) {
		nested = suite.session.SelectPreset(schema.GroupVolume, "Retail Frenzy")
	}))

	suite.Require().NoError(suite.session.SelectPreset(schema.GroupPrice, "Bull Run"))
	suite.True(errors.HasCode(nested, errors.ErrCodeApplyInProgress))

	volume, err := suite.session.GetState(schema.GroupVolume)
	suite.Require().NoError(err)
	suite.Equal(preset.CustomPresetName, volume.ActivePreset)
}

func (suite *SessionTestSuite) TestObserversGetIndependentValues() {
	suite.observer.EXPECT().OnConfigurationChanged(gomock.Any()).Times(1)

	suite.session.Subscribe(config.ObserverFunc(func(c config.Change) {
		c.Values["volatility"] = -1.0
		delete(c.Values, "drift")
	}))

	var seen config.Change
	suite.session.Subscribe(config.ObserverFunc(func(c config.Change) {
		seen = c
	}))

	suite.Require().NoError(suite.session.SelectPreset(schema.GroupPrice, "Flash Crash"))
	suite.Equal(150.0, seen.Values["volatility"])
	suite.Equal(-50.0, seen.Values["drift"])

	state, err := suite.session.GetState(schema.GroupPrice)
	suite.Require().NoError(err)
	suite.Equal(150.0, state.Values["volatility"])
	suite.Equal(-50.0, state.Values["drift"])
}
