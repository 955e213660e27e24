package scoring_test

import (
	"context"
	"errors"
	"testing"

	schema "github.com/verifund/aiscore/internal/domain/schema"
	scoring "github.com/verifund/aiscore/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

// stubPredictor returns a fixed value or error.
type stubPredictor struct {
	value float64
	err   error
}

func (p *stubPredictor) Predict(_ context.Context, _ []float64) (float64, error) {
	return p.value, p.err
}

func mustSchema(columns ...string) *schema.Schema {
	s, err := schema.New(columns)
	if err != nil {
		panic(err)
	}
	return s
}

func TestEngineScore(t *testing.T) {
	Convey("Given an engine with a three-column score schema", t, func() {
		scoreSchema := mustSchema("a", "b", "c")
		priceSchema := mustSchema("a", "b")
		scorer := &stubPredictor{value: 74.74}
		engine := scoring.NewEngine(scorer, scoreSchema, &stubPredictor{}, priceSchema)

		Convey("When scoring an aligned vector", func() {
			score, err := engine.Score(context.Background(), []float64{1, 2, 3})

			Convey("Then it should return the model's prediction", func() {
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 74.74)
			})
		})

		Convey("When the vector is shorter than the schema", func() {
			_, err := engine.Score(context.Background(), []float64{1, 2})

			Convey("Then it should return a schema mismatch error", func() {
				So(err, ShouldWrap, scoring.ErrSchemaMismatch)

				var mismatch *scoring.SchemaMismatchError
				So(errors.As(err, &mismatch), ShouldBeTrue)
				So(mismatch.Model, ShouldEqual, scoring.ModelScore)
				So(mismatch.VectorLen, ShouldEqual, 2)
				So(mismatch.SchemaLen, ShouldEqual, 3)
			})
		})

		Convey("When the model capability fails", func() {
			scorer.err = errors.New("model exploded")
			_, err := engine.Score(context.Background(), []float64{1, 2, 3})

			Convey("Then it should return a prediction error", func() {
				So(err, ShouldWrap, scoring.ErrPrediction)
				So(err.Error(), ShouldContainSubstring, "model exploded")
			})
		})
	})
}

func TestEnginePrice(t *testing.T) {
	Convey("Given an engine with a two-column price schema", t, func() {
		scoreSchema := mustSchema("a", "b", "c")
		priceSchema := mustSchema("a", "b")
		pricer := &stubPredictor{}
		engine := scoring.NewEngine(&stubPredictor{}, scoreSchema, pricer, priceSchema)

		Convey("When the raw prediction is inside the band", func() {
			pricer.value = 332500.4
			quote, err := engine.Price(context.Background(), []float64{1, 2})

			Convey("Then the suggestion should be rounded to a whole amount", func() {
				So(err, ShouldBeNil)
				So(quote.Suggested, ShouldEqual, 332500)
			})

			Convey("Then the range should be the suggestion ±12%", func() {
				So(err, ShouldBeNil)
				So(quote.Lower, ShouldEqual, 292600)
				So(quote.Upper, ShouldEqual, 372400)
			})

			Convey("Then the band should bracket the suggestion", func() {
				So(err, ShouldBeNil)
				So(quote.Lower, ShouldBeLessThanOrEqualTo, quote.Suggested)
				So(quote.Upper, ShouldBeGreaterThanOrEqualTo, quote.Suggested)
			})
		})

		Convey("When the raw prediction falls below the floor", func() {
			pricer.value = 12000
			quote, err := engine.Price(context.Background(), []float64{1, 2})

			Convey("Then the whole quote should clamp to the floor", func() {
				So(err, ShouldBeNil)
				So(quote.Suggested, ShouldEqual, scoring.PriceFloor)
				So(quote.Lower, ShouldEqual, scoring.PriceFloor)
				So(quote.Upper, ShouldEqual, 56000)
			})
		})

		Convey("When the raw prediction exceeds the ceiling", func() {
			pricer.value = 720000
			quote, err := engine.Price(context.Background(), []float64{1, 2})

			Convey("Then the suggestion and upper bound should clamp to the ceiling", func() {
				So(err, ShouldBeNil)
				So(quote.Suggested, ShouldEqual, scoring.PriceCeiling)
				So(quote.Upper, ShouldEqual, scoring.PriceCeiling)
				So(quote.Lower, ShouldEqual, 440000)
			})
		})

		Convey("When the vector length disagrees with the price schema", func() {
			_, err := engine.Price(context.Background(), []float64{1, 2, 3})

			Convey("Then it should return a schema mismatch error naming the price model", func() {
				So(err, ShouldWrap, scoring.ErrSchemaMismatch)

				var mismatch *scoring.SchemaMismatchError
				So(errors.As(err, &mismatch), ShouldBeTrue)
				So(mismatch.Model, ShouldEqual, scoring.ModelPrice)
			})
		})

		Convey("When the model capability fails", func() {
			pricer.err = errors.New("nan weights")
			_, err := engine.Price(context.Background(), []float64{1, 2})

			Convey("Then it should return a prediction error", func() {
				So(err, ShouldWrap, scoring.ErrPrediction)
			})
		})
	})
}
