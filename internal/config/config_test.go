package config_test

import (
	"context"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/verifund/aiscore/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
			convey.So(cfg.ScoreModelPath, convey.ShouldBeEmpty)
			convey.So(cfg.PriceModelPath, convey.ShouldBeEmpty)
			convey.So(cfg.LedgerURL, convey.ShouldEqual, "http://localhost:5000/api/integrations/score-update")
			convey.So(cfg.NotifyTimeoutMS, convey.ShouldEqual, 5000)
			convey.So(cfg.DeliveryQueueSize, convey.ShouldEqual, 10000)
			convey.So(cfg.DeliveryWorkerCount, convey.ShouldEqual, 4)
			convey.So(cfg.ClassifierSeed, convey.ShouldEqual, 0)
		})
	})
}
