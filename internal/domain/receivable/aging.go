package receivable

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgingBucket labels how long past due a balance is
type AgingBucket string

const (
	BucketCurrent AgingBucket = "current"
	Bucket1To30   AgingBucket = "1-30"
	Bucket31To60  AgingBucket = "31-60"
	Bucket61To90  AgingBucket = "61-90"
	BucketOver90  AgingBucket = "90+"
)

// AllBuckets lists the buckets in report order
var AllBuckets = []AgingBucket{BucketCurrent, Bucket1To30, Bucket31To60, Bucket61To90, BucketOver90}

// BucketFor classifies a days-overdue count
func BucketFor(daysOverdue int) AgingBucket {
	switch {
	case daysOverdue <= 0:
		return BucketCurrent
	case daysOverdue <= 30:
		return Bucket1To30
	case daysOverdue <= 60:
		return Bucket31To60
	case daysOverdue <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}

// AgingLine is one customer's row in the aging report
type AgingLine struct {
	CustomerID   uuid.UUID
	CustomerName string
	Buckets      map[AgingBucket]decimal.Decimal
	Total        decimal.Decimal
}

// NewAgingLine creates an empty line with all buckets at zero
func NewAgingLine(customerID uuid.UUID, customerName string) *AgingLine {
	buckets := make(map[AgingBucket]decimal.Decimal, len(AllBuckets))
	for _, b := range AllBuckets {
		buckets[b] = decimal.Zero
	}
	return &AgingLine{
		CustomerID:   customerID,
		CustomerName: customerName,
		Buckets:      buckets,
		Total:        decimal.Zero,
	}
}

// AddDocument accumulates a document's balance into the right bucket
func (l *AgingLine) AddDocument(doc *CustomerDocument) {
	if !doc.IsOutstanding() {
		return
	}
	balance := doc.Balance()
	if !balance.IsPositive() {
		return
	}

	bucket := BucketFor(doc.DaysOverdue())
	l.Buckets[bucket] = l.Buckets[bucket].Add(balance)
	l.Total = l.Total.Add(balance)
}

// AgingReport groups the lines of one aging run. Balances under an open
// dispute are held out of the buckets and reported on the side, so the
// collections team does not chase paused documents.
type AgingReport struct {
	Lines         []AgingLine
	Totals        map[AgingBucket]decimal.Decimal
	Total         decimal.Decimal
	DisputedTotal decimal.Decimal
	DisputedCount int
}

// BuildAgingReport aggregates outstanding documents per customer.
// Customer names are resolved by the caller via the names map.
func BuildAgingReport(docs []CustomerDocument, names map[uuid.UUID]string) *AgingReport {
	byCustomer := make(map[uuid.UUID]*AgingLine)
	order := make([]uuid.UUID, 0)
	disputedTotal := decimal.Zero
	disputedCount := 0

	for i := range docs {
		doc := &docs[i]
		if !doc.IsOutstanding() {
			continue
		}
		if doc.Status == DocumentStatusDisputed {
			disputedTotal = disputedTotal.Add(doc.Balance())
			disputedCount++
			continue
		}
		line, ok := byCustomer[doc.CustomerID]
		if !ok {
			line = NewAgingLine(doc.CustomerID, names[doc.CustomerID])
			byCustomer[doc.CustomerID] = line
			order = append(order, doc.CustomerID)
		}
		line.AddDocument(doc)
	}

	report := &AgingReport{
		Lines:         make([]AgingLine, 0, len(order)),
		Totals:        make(map[AgingBucket]decimal.Decimal, len(AllBuckets)),
		Total:         decimal.Zero,
		DisputedTotal: disputedTotal,
		DisputedCount: disputedCount,
	}
	for _, b := range AllBuckets {
		report.Totals[b] = decimal.Zero
	}
	for _, id := range order {
		line := byCustomer[id]
		report.Lines = append(report.Lines, *line)
		for b, amount := range line.Buckets {
			report.Totals[b] = report.Totals[b].Add(amount)
		}
		report.Total = report.Total.Add(line.Total)
	}

	return report
}
