package helpers

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseDuration(t *testing.T) {
	Convey("1s", t, func() {
		result, err := ParseDuration("1s")
		So(err, ShouldBeNil)
		So(result, ShouldEqual, time.Duration(time.Second))
	})
	Convey("22m", t, func() {
		result, err := ParseDuration("22m")
		So(err, ShouldBeNil)
		So(result, ShouldEqual, time.Duration(time.Minute*22))
	})
	Convey("45d", t, func() {
		result, err := ParseDuration("45d")
		So(err, ShouldBeNil)
		So(result, ShouldEqual, time.Duration(time.Hour*24*45))
	})
	Convey("5y", t, func() {
		result, err := ParseDuration("5y")
		So(err, ShouldBeNil)
		So(result, ShouldEqual, time.Duration(time.Hour*24*365*5))
	})
	Convey("3h2m1s", t, func() {
		result, err := ParseDuration("3h2m1s")
		So(err, ShouldBeNil)
		So(result, ShouldEqual, time.Duration(time.Hour*3+time.Minute*2+time.Second))
	})
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	daysAgo := func(n int) *time.Time {
		d := now.AddDate(0, 0, -n)
		return &d
	}

	Convey("nil timestamp", t, func() {
		So(TimeAgo(nil, now), ShouldEqual, "Never")
	})
	Convey("now", t, func() {
		So(TimeAgo(&now, now), ShouldEqual, "Today")
	})
	Convey("one day", t, func() {
		So(TimeAgo(daysAgo(1), now), ShouldEqual, "1 day ago")
	})
	Convey("ten days", t, func() {
		So(TimeAgo(daysAgo(10), now), ShouldEqual, "10 days ago")
	})
	Convey("29 days still counted in days", t, func() {
		So(TimeAgo(daysAgo(29), now), ShouldEqual, "29 days ago")
	})
	Convey("40 days is one month", t, func() {
		So(TimeAgo(daysAgo(40), now), ShouldEqual, "1 month ago")
	})
	Convey("100 days is three months", t, func() {
		So(TimeAgo(daysAgo(100), now), ShouldEqual, "3 months ago")
	})
	Convey("400 days is one year", t, func() {
		So(TimeAgo(daysAgo(400), now), ShouldEqual, "1 year ago")
	})
	Convey("800 days is two years", t, func() {
		So(TimeAgo(daysAgo(800), now), ShouldEqual, "2 years ago")
	})
}

func TestFormatDate(t *testing.T) {
	Convey("locale-style date", t, func() {
		So(FormatDate(time.Date(2024, 1, 5, 3, 4, 5, 0, time.UTC)), ShouldEqual, "Jan 5, 2024")
	})
}
