package builtins

import (
	"math"
	"time"

	"github.com/mewlang/mew/mewerr"
	"github.com/mewlang/mew/runtime"
)

// toMeow renders dates the way JavaScript's Date.toString does, pinned to
// UTC.
const meowLayout = "Mon Jan 02 2006 15:04:05 GMT-0700"

// catTimeGlobal builds the CatTime object. Dates are plain objects carrying
// a _timestamp property in epoch milliseconds; all accessors read UTC.
func catTimeGlobal() *runtime.Value {
	return runtime.NewObject(map[string]*runtime.Value{
		"now":    runtime.NewNative("now", nativeTime),
		"wakeUp": runtime.NewNative("wakeUp", nativeCatTimeWakeUp),
		"fullYear": dateAccessor("fullYear", func(t time.Time) float64 {
			return float64(t.Year())
		}),
		"month": dateAccessor("month", func(t time.Time) float64 {
			// 0-indexed, JavaScript style
			return float64(t.Month() - 1)
		}),
		"day": dateAccessor("day", func(t time.Time) float64 {
			return float64(t.Day())
		}),
		"weekday": dateAccessor("weekday", func(t time.Time) float64 {
			return float64(t.Weekday())
		}),
		"hours": dateAccessor("hours", func(t time.Time) float64 {
			return float64(t.Hour())
		}),
		"minutes": dateAccessor("minutes", func(t time.Time) float64 {
			return float64(t.Minute())
		}),
		"seconds": dateAccessor("seconds", func(t time.Time) float64 {
			return float64(t.Second())
		}),
		"milliseconds": dateAccessor("milliseconds", func(t time.Time) float64 {
			return float64(t.Nanosecond() / 1e6)
		}),
		"toMeow": runtime.NewNative("toMeow", nativeCatTimeToMeow),
	})
}

func nativeCatTimeWakeUp(args []*runtime.Value) (*runtime.Value, error) {
	return runtime.NewObject(map[string]*runtime.Value{
		"_timestamp": runtime.NewNumber(float64(time.Now().UnixMilli())),
	}), nil
}

// dateTimestamp pulls the _timestamp out of a date object.
func dateTimestamp(name string, args []*runtime.Value) (float64, error) {
	if len(args) != 1 {
		return 0, mewerr.Runtime("CatTime.%s requires exactly one argument (date object)", name)
	}
	if args[0].Type != runtime.TypeObject {
		return 0, mewerr.Runtime("CatTime.%s requires a date object", name)
	}
	ts, ok := args[0].Object.Properties["_timestamp"]
	if !ok || ts.Type != runtime.TypeNumber {
		return 0, mewerr.Runtime("Invalid date object passed to CatTime.%s", name)
	}
	return ts.Number, nil
}

func timestampToUTC(timestamp float64) time.Time {
	seconds := int64(timestamp / 1000)
	nanos := int64(math.Mod(timestamp, 1000) * 1e6)
	return time.Unix(seconds, nanos).UTC()
}

func dateAccessor(name string, fn func(time.Time) float64) *runtime.Value {
	return runtime.NewNative(name, func(args []*runtime.Value) (*runtime.Value, error) {
		timestamp, err := dateTimestamp(name, args)
		if err != nil {
			return nil, err
		}
		return runtime.NewNumber(fn(timestampToUTC(timestamp))), nil
	})
}

func nativeCatTimeToMeow(args []*runtime.Value) (*runtime.Value, error) {
	timestamp, err := dateTimestamp("toMeow", args)
	if err != nil {
		return nil, err
	}
	formatted := timestampToUTC(timestamp).Format(meowLayout)
	return runtime.NewString(formatted), nil
}
