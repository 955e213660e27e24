package schema_test

import (
	"testing"

	schema "github.com/verifund/aiscore/internal/domain/schema"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSchema(t *testing.T) {
	Convey("Given training columns with one-hot expansions", t, func() {
		columns := []string{
			"projects_completed",
			"avg_client_rating",
			"project_category_Graphic Design",
			"project_category_Web Development",
		}

		Convey("When building a schema with the categorical field declared", func() {
			s, err := schema.New(columns, schema.WithCategoricalField("project_category"))

			Convey("Then construction should succeed", func() {
				So(err, ShouldBeNil)
				So(s, ShouldNotBeNil)
				So(s.Len(), ShouldEqual, 4)
			})

			Convey("Then column order should be preserved exactly", func() {
				So(err, ShouldBeNil)
				So(s.Columns(), ShouldResemble, columns)
				So(s.Column(0), ShouldEqual, "projects_completed")
				So(s.Column(3), ShouldEqual, "project_category_Web Development")
			})

			Convey("Then indexes should resolve known columns", func() {
				So(err, ShouldBeNil)
				i, ok := s.Index("avg_client_rating")
				So(ok, ShouldBeTrue)
				So(i, ShouldEqual, 1)

				_, ok = s.Index("tenure_months")
				So(ok, ShouldBeFalse)
			})

			Convey("Then expansion columns should carry their source field and category", func() {
				So(err, ShouldBeNil)
				e, ok := s.Expansion("project_category_Web Development")
				So(ok, ShouldBeTrue)
				So(e.SourceField, ShouldEqual, "project_category")
				So(e.Category, ShouldEqual, "Web Development")

				_, ok = s.Expansion("projects_completed")
				So(ok, ShouldBeFalse)
			})

			Convey("Then categories should come back in column order", func() {
				So(err, ShouldBeNil)
				So(s.Categories("project_category"), ShouldResemble,
					[]string{"Graphic Design", "Web Development"})
				So(s.Categories("missing_field"), ShouldBeNil)
			})
		})

		Convey("When no categorical field is declared", func() {
			s, err := schema.New(columns)

			Convey("Then prefixed columns should stay plain columns", func() {
				So(err, ShouldBeNil)
				_, ok := s.Expansion("project_category_Graphic Design")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When mutating the returned column slice", func() {
			s, err := schema.New(columns)
			So(err, ShouldBeNil)

			got := s.Columns()
			got[0] = "tampered"

			Convey("Then the schema should be unaffected", func() {
				So(s.Column(0), ShouldEqual, "projects_completed")
			})
		})
	})

	Convey("Given invalid column lists", t, func() {
		Convey("When the list is empty", func() {
			s, err := schema.New(nil)

			Convey("Then it should return ErrEmptySchema", func() {
				So(s, ShouldBeNil)
				So(err, ShouldWrap, schema.ErrEmptySchema)
			})
		})

		Convey("When a column appears twice", func() {
			s, err := schema.New([]string{"a", "b", "a"})

			Convey("Then it should return a duplicate column error", func() {
				So(s, ShouldBeNil)
				So(err, ShouldWrap, schema.ErrDuplicateColumn)
				So(err.Error(), ShouldContainSubstring, "a")
			})
		})
	})
}
