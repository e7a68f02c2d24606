package sendwindow

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"reminder-engine/internal/pkg/errs"
)

var (
	ErrInvalidTimeOfDay = errs.New("time of day must be HH:MM")
	ErrInvalidWindow    = errs.New("send window start must be before end")
	ErrInvalidWeekday   = errs.New("weekday must be between 1 (Mon) and 7 (Sun)")
	ErrInvalidTimezone  = errs.New("unknown IANA timezone")
)

const (
	DefaultStart = "09:00"
	DefaultEnd   = "19:00"
)

// DefaultDays is Monday through Saturday.
var DefaultDays = []int{1, 2, 3, 4, 5, 6}

// TimeOfDay is a local wall-clock time in minutes since midnight.
type TimeOfDay int

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, ErrInvalidTimeOfDay
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 24 {
		return 0, ErrInvalidTimeOfDay
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// RawWindow is the stored JSON shape of a tenant's window.
type RawWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  []int  `json:"days"`
}

// Policy is a tenant's allowed weekdays and [Start, End) local time range.
// Days use ISO numbering, 1=Mon .. 7=Sun.
type Policy struct {
	Location *time.Location
	Days     []int
	Start    TimeOfDay
	End      TimeOfDay
}

// ParsePolicy fills missing fields with the defaults (09:00-19:00, Mon-Sat).
func ParsePolicy(timezone string, raw *RawWindow) (*Policy, error) {
	if raw == nil {
		raw = &RawWindow{}
	}
	timezone = strings.TrimSpace(timezone)
	if timezone == "" {
		return nil, ErrInvalidTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, errs.Wrap(ErrInvalidTimezone, timezone)
	}

	startRaw, endRaw := raw.Start, raw.End
	if startRaw == "" {
		startRaw = DefaultStart
	}
	if endRaw == "" {
		endRaw = DefaultEnd
	}
	start, err := ParseTimeOfDay(startRaw)
	if err != nil {
		return nil, err
	}
	end, err := ParseTimeOfDay(endRaw)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, ErrInvalidWindow
	}

	days := raw.Days
	if len(days) == 0 {
		days = DefaultDays
	}
	for _, d := range days {
		if d < 1 || d > 7 {
			return nil, ErrInvalidWeekday
		}
	}
	days = slices.Clone(days)
	slices.Sort(days)

	return &Policy{
		Location: loc,
		Days:     slices.Compact(days),
		Start:    start,
		End:      end,
	}, nil
}

func DefaultPolicy(timezone string) (*Policy, error) {
	return ParsePolicy(timezone, nil)
}

func (p *Policy) Raw() RawWindow {
	return RawWindow{Start: p.Start.String(), End: p.End.String(), Days: slices.Clone(p.Days)}
}

func (p *Policy) allows(day int) bool {
	return slices.Contains(p.Days, day)
}

func isoWeekday(t time.Time) int {
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}

// InWindow reports whether now falls inside the policy. A nil policy is always open.
func InWindow(now time.Time, p *Policy) bool {
	if p == nil {
		return true
	}
	local := now.In(p.Location)
	if !p.allows(isoWeekday(local)) {
		return false
	}
	tod := TimeOfDay(local.Hour()*60 + local.Minute())
	return tod >= p.Start && tod < p.End
}

// NextValid returns from itself when it is inside the window, otherwise the
// earliest later window opening. Results are in UTC.
func NextValid(from time.Time, p *Policy) time.Time {
	if p == nil {
		return from.UTC()
	}
	local := from.In(p.Location)

	if !p.allows(isoWeekday(local)) {
		return p.nextOpening(local, 0).UTC()
	}

	startToday := p.at(local, 0, p.Start)
	endToday := p.at(local, 0, p.End)
	if local.Before(startToday) {
		return startToday.UTC()
	}
	if !local.Before(endToday) {
		return p.nextOpening(local, 1).UTC()
	}
	return from.UTC()
}

// AddDaysAndClamp adds calendar days in the policy's zone, then clamps with NextValid.
func AddDaysAndClamp(base time.Time, days int, p *Policy) time.Time {
	if p == nil {
		return base.AddDate(0, 0, days).UTC()
	}
	return NextValid(base.In(p.Location).AddDate(0, 0, days), p)
}

func (p *Policy) nextOpening(local time.Time, fromOffset int) time.Time {
	for i := fromOffset; i < fromOffset+7; i++ {
		cand := p.at(local, i, p.Start)
		if p.allows(isoWeekday(cand)) {
			return cand
		}
	}
	// unreachable with a parsed policy, days is never empty
	return p.at(local, fromOffset+1, p.Start)
}

func (p *Policy) at(local time.Time, dayOffset int, tod TimeOfDay) time.Time {
	return time.Date(local.Year(), local.Month(), local.Day()+dayOffset, int(tod)/60, int(tod)%60, 0, 0, p.Location)
}
