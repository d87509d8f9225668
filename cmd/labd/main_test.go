package main

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/synthetic-data-lab/internal/logger"
	"github.com/stretchr/testify/suite"
)

type LabdTestSuite struct {
	suite.Suite
}

func TestLabdSuite(t *testing.T) {
	suite.Run(t, new(LabdTestSuite))
}

func (suite *LabdTestSuite) TestNewServerWithExtraPresets() {
	path := filepath.Join(suite.T().TempDir(), "extra.yaml")
	err := os.WriteFile(path, []byte("version: 1.0.0\ngroups:\n  volume:\n    - name: Holiday\n      values:\n        base_volume: 5000\n"), 0644)
	suite.Require().NoError(err)

	server, err := newServer(path, logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.NotNil(server)
}

func (suite *LabdTestSuite) TestNewServerRejectsClashingPresets() {
	path := filepath.Join(suite.T().TempDir(), "extra.yaml")
	err := os.WriteFile(path, []byte("version: 1.0.0\ngroups:\n  price:\n    - name: Bull Run\n      values:\n        drift: 10\n"), 0644)
	suite.Require().NoError(err)

	_, err = newServer(path, logger.NewNopLogger())
	suite.Error(err)

	_, err = newServer(filepath.Join(suite.T().TempDir(), "missing.yaml"), logger.NewNopLogger())
	suite.Error(err)
}

func (suite *LabdTestSuite) TestServeStopsOnCancel() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- serve(ctx, "127.0.0.1:0", "", logger.NewNopLogger())
	}()

	// let the listener come up before cancelling
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		suite.NoError(err)
	case <-time.After(5 * time.Second):
		suite.Fail("serve did not return after cancel")
	}
}

func (suite *LabdTestSuite) TestServeFailsOnBusyAddress() {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	suite.Require().NoError(err)
	defer listener.Close()

	err = serve(context.Background(), listener.Addr().String(), "", logger.NewNopLogger())
	suite.Error(err)
}
