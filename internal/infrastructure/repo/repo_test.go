package repo

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"milanfood-backend/internal/domain"
)

func sampleOrder(id string, at time.Time) *domain.Order {
	return &domain.Order{
		OrderID:       id,
		Items:         []domain.LineItem{{ProductID: 5, Name: "Postre Brownie", UnitPrice: 3500, Quantity: 1, Extras: []string{}}},
		Totals:        domain.Totals{Subtotal: 3500, DeliveryFee: 2500, Total: 6000},
		PaymentMethod: domain.PaymentCash,
		CreatedAt:     at,
	}
}

func TestMemoryOrderRepo(t *testing.T) {
	r := NewMemoryOrderRepo()
	ctx := context.Background()
	if err := r.Submit(ctx, sampleOrder("b", time.Now())); err != nil {
		t.Fatalf("submit: %v", err)
	}
	o, ok, err := r.Get(ctx, "b")
	if err != nil || !ok || o.OrderID != "b" {
		t.Fatalf("get b failed: %v %v", ok, err)
	}
	if _, ok, _ := r.Get(ctx, "missing"); ok {
		t.Fatalf("missing order found")
	}
}

func TestMemoryOrderRepo_StoresCopy(t *testing.T) {
	r := NewMemoryOrderRepo()
	ctx := context.Background()
	o := sampleOrder("x", time.Now())
	_ = r.Submit(ctx, o)
	o.Items[0].Quantity = 9
	got, _, _ := r.Get(ctx, "x")
	if got.Items[0].Quantity != 1 {
		t.Fatalf("stored order aliased caller slice")
	}
	got.Items[0].Quantity = 7
	again, _, _ := r.Get(ctx, "x")
	if again.Items[0].Quantity != 1 {
		t.Fatalf("returned order aliased stored slice")
	}
}

func TestMemoryOrderRepo_Append(t *testing.T) {
	r := NewMemoryOrderRepo()
	payload := json.RawMessage(`{"total":17000}`)
	if err := r.Append(context.Background(), "i-1", payload); err != nil {
		t.Fatalf("append: %v", err)
	}
	payload[2] = 'X'
	if got := string(r.intake["i-1"]); got != `{"total":17000}` {
		t.Fatalf("stored payload %q", got)
	}
}

func TestFileLog_AppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "orders.log")
	fixed := time.Date(2026, 7, 9, 18, 30, 0, 0, time.UTC)
	l := NewFileLog(path)
	l.Now = func() time.Time { return fixed }

	for _, id := range []string{"o1", "o2"} {
		if err := l.Submit(context.Background(), sampleOrder(id, fixed)); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	var ids []string
	for sc.Scan() {
		ts, payload, ok := strings.Cut(sc.Text(), "\t")
		if !ok {
			t.Fatalf("missing tab in %q", sc.Text())
		}
		if ts != "2026-07-09T18:30:00Z" {
			t.Fatalf("timestamp %q", ts)
		}
		var o domain.Order
		if err := json.Unmarshal([]byte(payload), &o); err != nil {
			t.Fatalf("payload: %v", err)
		}
		ids = append(ids, o.OrderID)
	}
	if strings.Join(ids, ",") != "o1,o2" {
		t.Fatalf("ids %v", ids)
	}
}

func TestFileLog_AppendWritesPayloadAsReceived(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.log")
	fixed := time.Date(2026, 7, 9, 18, 30, 0, 0, time.UTC)
	l := NewFileLog(path)
	l.Now = func() time.Time { return fixed }

	storefront := `{"items":[{"name":"Pizza","price":7000,"quantity":2}],"subtotal":14000,"delivery":3000,"total":17000,"paymentMethod":"cash"}`
	for _, p := range []string{storefront, `[1,2,3]`} {
		if err := l.Append(context.Background(), "ignored", json.RawMessage(p)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "2026-07-09T18:30:00Z\t" + storefront + "\n" + "2026-07-09T18:30:00Z\t[1,2,3]\n"
	if string(raw) != want {
		t.Fatalf("log:\n%s\nwant:\n%s", raw, want)
	}
}

func TestFileLog_ConcurrentWritesStayWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.log")
	l := NewFileLog(path)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Submit(context.Background(), sampleOrder("c", time.Now()))
		}()
	}
	wg.Wait()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 lines, got %d", len(lines))
	}
	for _, ln := range lines {
		if _, payload, _ := strings.Cut(ln, "\t"); !json.Valid([]byte(payload)) {
			t.Fatalf("corrupt line %q", ln)
		}
	}
}

func TestFileLog_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	l := NewFileLog(dir)
	if err := l.Submit(context.Background(), sampleOrder("z", time.Now())); err == nil {
		t.Fatalf("expected error writing to a directory")
	}
}

func TestPostgresRepo(t *testing.T) {
	dsn := os.Getenv("MILANFOOD_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("MILANFOOD_TEST_POSTGRES_DSN not set")
	}
	r, err := NewPostgresRepo(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()
	id := "test-" + time.Now().Format("20060102150405.000000000")
	if err := r.Submit(context.Background(), sampleOrder(id, time.Now().UTC())); err != nil {
		t.Fatalf("submit: %v", err)
	}
	got, ok, err := r.Get(context.Background(), id)
	if err != nil || !ok || got.Totals.Total != 6000 {
		t.Fatalf("get: %v %v %+v", err, ok, got)
	}
	if _, ok, err := r.Get(context.Background(), "missing"); ok || err != nil {
		t.Fatalf("missing order: %v %v", ok, err)
	}
	if err := r.Append(context.Background(), id, json.RawMessage(`[1,2,3]`)); err != nil {
		t.Fatalf("append: %v", err)
	}
}
