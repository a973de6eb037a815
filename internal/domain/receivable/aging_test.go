package receivable

import (
	"testing"
	"time"

	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketFor(t *testing.T) {
	cases := []struct {
		days   int
		bucket AgingBucket
	}{
		{0, BucketCurrent},
		{-5, BucketCurrent},
		{1, Bucket1To30},
		{30, Bucket1To30},
		{31, Bucket31To60},
		{60, Bucket31To60},
		{61, Bucket61To90},
		{90, Bucket61To90},
		{91, BucketOver90},
		{400, BucketOver90},
	}
	for _, c := range cases {
		assert.Equal(t, c.bucket, BucketFor(c.days), "days=%d", c.days)
	}
}

func docDueDaysAgo(t *testing.T, customerID uuid.UUID, amount int64, daysOverdue int) CustomerDocument {
	t.Helper()
	issued := time.Now().Add(-time.Duration(daysOverdue+30) * 24 * time.Hour)
	due := time.Now().Add(-time.Duration(daysOverdue) * 24 * time.Hour)
	doc, err := NewCustomerDocument(DocumentTypeInvoice, uuid.NewString(), customerID, valueobject.VES, decimal.NewFromInt(amount), issued, &due)
	require.NoError(t, err)
	return *doc
}

func TestBuildAgingReport(t *testing.T) {
	customerA := uuid.New()
	customerB := uuid.New()
	names := map[uuid.UUID]string{
		customerA: "Cliente A",
		customerB: "Cliente B",
	}

	current, err := NewCustomerDocument(DocumentTypeInvoice, "FAC-1", customerA, valueobject.VES, decimal.NewFromInt(100), time.Now(), nil)
	require.NoError(t, err)

	docs := []CustomerDocument{
		*current,
		docDueDaysAgo(t, customerA, 200, 15),  // 1-30
		docDueDaysAgo(t, customerA, 300, 45),  // 31-60
		docDueDaysAgo(t, customerB, 400, 120), // 90+
	}

	// Settled documents are excluded
	settled := docDueDaysAgo(t, customerB, 999, 10)
	_, err = settled.Apply(ApplicationTypePayment, decimal.NewFromInt(999), "REC-1", nil, nil)
	require.NoError(t, err)
	docs = append(docs, settled)

	// Disputed documents are held out of the buckets and reported aside
	disputed := docDueDaysAgo(t, customerB, 250, 40)
	require.NoError(t, disputed.MarkDisputed())
	docs = append(docs, disputed)

	report := BuildAgingReport(docs, names)

	require.Len(t, report.Lines, 2)
	assert.True(t, report.Total.Equal(decimal.NewFromInt(1000)))
	assert.True(t, report.DisputedTotal.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, 1, report.DisputedCount)

	lineA := report.Lines[0]
	assert.Equal(t, "Cliente A", lineA.CustomerName)
	assert.True(t, lineA.Buckets[BucketCurrent].Equal(decimal.NewFromInt(100)))
	assert.True(t, lineA.Buckets[Bucket1To30].Equal(decimal.NewFromInt(200)))
	assert.True(t, lineA.Buckets[Bucket31To60].Equal(decimal.NewFromInt(300)))
	assert.True(t, lineA.Total.Equal(decimal.NewFromInt(600)))

	assert.True(t, report.Totals[BucketOver90].Equal(decimal.NewFromInt(400)))
}

func TestAgingLine_PartialBalance(t *testing.T) {
	customerID := uuid.New()
	doc := docDueDaysAgo(t, customerID, 500, 35)
	_, err := doc.Apply(ApplicationTypePayment, decimal.NewFromInt(200), "REC-2", nil, nil)
	require.NoError(t, err)

	line := NewAgingLine(customerID, "Cliente C")
	line.AddDocument(&doc)

	assert.True(t, line.Buckets[Bucket31To60].Equal(decimal.NewFromInt(300)))
	assert.True(t, line.Total.Equal(decimal.NewFromInt(300)))
}
