package dataset

import (
	"log/slog"
	"sort"
	"time"
)

// Dataset is a timestamp-ordered collection of Records. It is built once by
// ingestion and read-only afterwards, except for the single Scale pass over
// the energy fields.
type Dataset struct {
	records map[time.Time]*Record
	order   []time.Time
	sorted  bool
}

// New returns an empty Dataset.
func New() *Dataset {
	return &Dataset{records: make(map[time.Time]*Record)}
}

// Add records the value of f at ts, creating the Record on first sighting.
// Writing a field that already holds a different value is last-write-wins
// with a warning; repeated column blocks in the energy export land here.
func (d *Dataset) Add(ts time.Time, f Field, v float64) {
	r, ok := d.records[ts]
	if !ok {
		r = newRecord(ts)
		d.records[ts] = r
		d.order = append(d.order, ts)
		d.sorted = false
	}
	if old, ok := r.values[f]; ok && old != v {
		slog.Warn("overwriting data point",
			"timestamp", ts.Format("2006-01-02 15:04:05"),
			"field", string(f),
			"old", old,
			"new", v)
	}
	r.values[f] = v
}

// Len returns the number of distinct timestamps.
func (d *Dataset) Len() int {
	return len(d.records)
}

func (d *Dataset) sortOrder() {
	if !d.sorted {
		sort.Slice(d.order, func(i, j int) bool { return d.order[i].Before(d.order[j]) })
		d.sorted = true
	}
}

// Records returns every record in timestamp order.
func (d *Dataset) Records() []*Record {
	d.sortOrder()
	out := make([]*Record, 0, len(d.order))
	for _, ts := range d.order {
		out = append(out, d.records[ts])
	}
	return out
}

// Range returns the records within [from, to] in timestamp order. A zero
// bound is unbounded. Both bounds are dates: to is inclusive of the whole
// boundary day.
func (d *Dataset) Range(from, to time.Time) []*Record {
	d.sortOrder()
	var out []*Record
	for _, ts := range d.order {
		if !from.IsZero() && ts.Before(from) {
			continue
		}
		if !to.IsZero() && !ts.Before(to.AddDate(0, 0, 1)) {
			continue
		}
		out = append(out, d.records[ts])
	}
	return out
}

// Year returns the records of one calendar year in timestamp order.
func (d *Dataset) Year(year int) []*Record {
	d.sortOrder()
	var out []*Record
	for _, ts := range d.order {
		if ts.Year() == year {
			out = append(out, d.records[ts])
		}
	}
	return out
}

// Years returns the distinct calendar years present, ascending.
func (d *Dataset) Years() []int {
	seen := make(map[int]bool)
	for ts := range d.records {
		seen[ts.Year()] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Total sums f over the records within [from, to]; records missing the
// field contribute zero.
func (d *Dataset) Total(f Field, from, to time.Time) float64 {
	var sum float64
	for _, r := range d.Range(from, to) {
		sum += r.Value(f)
	}
	return sum
}

// Scale multiplies every consumed energy field by consumed and every
// generated heat field by generated, in place. It runs exactly once, after
// ingestion and before aggregation; 1.0 factors are an exact identity.
func (d *Dataset) Scale(consumed, generated float64) {
	for _, r := range d.records {
		for f, v := range r.values {
			switch {
			case f.IsConsumedEnergy():
				r.values[f] = v * consumed
			case f.IsGeneratedEnergy():
				r.values[f] = v * generated
			}
		}
	}
}
