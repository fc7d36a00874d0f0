package domain

import "time"

const (
	// DateLayout and TimeLayout match the Date and Time columns of the orders sheet.
	DateLayout = "02/01/2006"
	TimeLayout = "03:04 PM"

	// DayLayout is the calendar day format accepted by the order listing.
	DayLayout = "2006-01-02"
)

type OrderLine struct {
	Product      string
	Quantity     int
	Unit         string
	SpecialPrice string
}

type Order struct {
	ID        uint64
	Employee  string
	Retailer  Retailer
	Lines     []OrderLine
	Remarks   string
	CreatedAt time.Time
}

// OrderRecord is the persisted shape of one order line. Every record of an
// order carries identical order-level fields.
type OrderRecord struct {
	ID        uint64
	OrderID   uint64
	LineNo    int
	Employee  string
	Retailer  Retailer
	Line      OrderLine
	Remarks   string
	CreatedAt time.Time
}

func (r OrderRecord) Date() string {
	return r.CreatedAt.Format(DateLayout)
}

func (r OrderRecord) Time() string {
	return r.CreatedAt.Format(TimeLayout)
}

// Day is the calendar day of the record in the zone its timestamp carries.
func (r OrderRecord) Day() string {
	return r.CreatedAt.Format(DayLayout)
}

// Records flattens o into one record per line. Record ids are left for the store.
func (o Order) Records() []OrderRecord {
	records := make([]OrderRecord, len(o.Lines))
	for i, line := range o.Lines {
		records[i] = OrderRecord{
			OrderID:   o.ID,
			LineNo:    i + 1,
			Employee:  o.Employee,
			Retailer:  o.Retailer,
			Line:      line,
			Remarks:   o.Remarks,
			CreatedAt: o.CreatedAt,
		}
	}
	return records
}

// StartOfDay returns midnight of t's calendar day in loc, and the following midnight.
func StartOfDay(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
