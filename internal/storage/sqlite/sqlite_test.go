package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okatsu/sharehouse/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "sharehouse-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestPeople(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreatePerson assigns sequential ids", func(t *testing.T) {
		ann := &models.Person{FirstName: "Ann", LastName: "Lee", Allergies: "peanuts"}
		bo := &models.Person{FirstName: "Bo", LastName: "Tan"}

		if err := store.CreatePerson(ctx, ann); err != nil {
			t.Fatalf("CreatePerson failed: %v", err)
		}
		if err := store.CreatePerson(ctx, bo); err != nil {
			t.Fatalf("CreatePerson failed: %v", err)
		}

		if ann.ID != 1 || bo.ID != 2 {
			t.Errorf("Expected ids 1 and 2, got %d and %d", ann.ID, bo.ID)
		}
	})

	t.Run("GetPerson round-trips optional fields", func(t *testing.T) {
		ann, err := store.GetPerson(ctx, 1)
		if err != nil {
			t.Fatalf("GetPerson failed: %v", err)
		}
		if ann == nil {
			t.Fatal("Expected person, got nil")
		}
		if ann.FullName() != "Ann Lee" {
			t.Errorf("FullName = %q, want %q", ann.FullName(), "Ann Lee")
		}
		if ann.Allergies != "peanuts" {
			t.Errorf("Allergies = %q, want %q", ann.Allergies, "peanuts")
		}

		bo, err := store.GetPerson(ctx, 2)
		if err != nil {
			t.Fatalf("GetPerson failed: %v", err)
		}
		if bo.Allergies != "" || bo.MiscInfo != "" {
			t.Errorf("Expected empty optionals, got %q / %q", bo.Allergies, bo.MiscInfo)
		}
	})

	t.Run("GetPerson returns nil for missing id", func(t *testing.T) {
		person, err := store.GetPerson(ctx, 99)
		if err != nil {
			t.Fatalf("GetPerson failed: %v", err)
		}
		if person != nil {
			t.Errorf("Expected nil, got %+v", person)
		}
	})

	t.Run("ListPeople returns insertion order", func(t *testing.T) {
		people, err := store.ListPeople(ctx)
		if err != nil {
			t.Fatalf("ListPeople failed: %v", err)
		}
		if len(people) != 2 {
			t.Fatalf("Expected 2 people, got %d", len(people))
		}
		if people[0].ID != 1 || people[1].ID != 2 {
			t.Errorf("Unexpected order: %d, %d", people[0].ID, people[1].ID)
		}
	})

	t.Run("DeletePerson reports found and misses", func(t *testing.T) {
		found, err := store.DeletePerson(ctx, 2)
		if err != nil {
			t.Fatalf("DeletePerson failed: %v", err)
		}
		if !found {
			t.Error("Expected found=true for existing person")
		}

		found, err = store.DeletePerson(ctx, 2)
		if err != nil {
			t.Fatalf("DeletePerson failed: %v", err)
		}
		if found {
			t.Error("Expected found=false for already-deleted person")
		}
	})
}

func TestItems(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	milk := &models.Item{Name: "Milk", DefaultCost: 4.5}
	mystery := &models.Item{Name: "Mystery"} // no recorded cost

	if err := store.CreateItem(ctx, milk); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if err := store.CreateItem(ctx, mystery); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	t.Run("missing cost coerces to zero", func(t *testing.T) {
		items, err := store.ListItems(ctx)
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(items))
		}
		if items[0].DefaultCost != 4.5 {
			t.Errorf("Milk cost = %v, want 4.5", items[0].DefaultCost)
		}
		if items[1].DefaultCost != 0 {
			t.Errorf("Mystery cost = %v, want 0", items[1].DefaultCost)
		}

		// NULL stored, not 0.
		var nulls int
		if err := store.db.QueryRow("SELECT COUNT(*) FROM items WHERE default_cost IS NULL").Scan(&nulls); err != nil {
			t.Fatalf("count nulls: %v", err)
		}
		if nulls != 1 {
			t.Errorf("Expected 1 NULL cost row, got %d", nulls)
		}
	})

	t.Run("delete leaves referencing rows alone", func(t *testing.T) {
		found, err := store.DeleteItem(ctx, mystery.ID)
		if err != nil {
			t.Fatalf("DeleteItem failed: %v", err)
		}
		if !found {
			t.Error("Expected found=true")
		}
	})
}

func TestDebts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ann := &models.Person{FirstName: "Ann", LastName: "Lee"}
	bo := &models.Person{FirstName: "Bo", LastName: "Tan"}
	milk := &models.Item{Name: "Milk", DefaultCost: 4.5}
	for _, err := range []error{
		store.CreatePerson(ctx, ann),
		store.CreatePerson(ctx, bo),
		store.CreateItem(ctx, milk),
	} {
		if err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}

	t.Run("CreateDebt inserts origin and mapping together", func(t *testing.T) {
		origin := &models.DebtOrigin{ItemID: milk.ID, PurchaseDate: "2024-01-01", PurchasedBy: ann.ID}
		mapping := &models.DebtMapping{OwedBy: ann.ID, OwedTo: bo.ID, Amount: 4.5}

		if err := store.CreateDebt(ctx, origin, mapping); err != nil {
			t.Fatalf("CreateDebt failed: %v", err)
		}
		if origin.ID == 0 {
			t.Error("Expected origin id to be assigned")
		}
		if mapping.OriginID != origin.ID {
			t.Errorf("Mapping origin id %d, want %d", mapping.OriginID, origin.ID)
		}
	})

	t.Run("DeleteDebt retains the origin row by default", func(t *testing.T) {
		found, err := store.DeleteDebt(ctx, 1, true)
		if err != nil {
			t.Fatalf("DeleteDebt failed: %v", err)
		}
		if !found {
			t.Error("Expected found=true")
		}

		var origins, mappings int
		if err := store.db.QueryRow("SELECT COUNT(*) FROM debt_origins").Scan(&origins); err != nil {
			t.Fatalf("count origins: %v", err)
		}
		if err := store.db.QueryRow("SELECT COUNT(*) FROM debt_mappings").Scan(&mappings); err != nil {
			t.Fatalf("count mappings: %v", err)
		}
		if origins != 1 {
			t.Errorf("Expected 1 surviving origin, got %d", origins)
		}
		if mappings != 0 {
			t.Errorf("Expected 0 mappings, got %d", mappings)
		}
	})

	t.Run("DeleteDebt is a no-op on a miss", func(t *testing.T) {
		found, err := store.DeleteDebt(ctx, 1, true)
		if err != nil {
			t.Fatalf("DeleteDebt failed: %v", err)
		}
		if found {
			t.Error("Expected found=false on second settle")
		}
	})

	t.Run("DeleteDebt can remove the origin too", func(t *testing.T) {
		origin := &models.DebtOrigin{ItemID: milk.ID, PurchasedBy: bo.ID}
		mapping := &models.DebtMapping{OwedBy: bo.ID, OwedTo: ann.ID, Amount: 2}
		if err := store.CreateDebt(ctx, origin, mapping); err != nil {
			t.Fatalf("CreateDebt failed: %v", err)
		}

		if _, err := store.DeleteDebt(ctx, origin.ID, false); err != nil {
			t.Fatalf("DeleteDebt failed: %v", err)
		}

		var count int
		if err := store.db.QueryRow("SELECT COUNT(*) FROM debt_origins WHERE origin_id = ?", origin.ID).Scan(&count); err != nil {
			t.Fatalf("count origins: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected origin removed, found %d rows", count)
		}
	})
}

func TestAggregations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ann := &models.Person{FirstName: "Ann", LastName: "Lee"}
	bo := &models.Person{FirstName: "Bo", LastName: "Tan"}
	cai := &models.Person{FirstName: "Cai", LastName: "Wu"}
	milk := &models.Item{Name: "Milk", DefaultCost: 4.5}
	soap := &models.Item{Name: "Soap", DefaultCost: 3}
	for _, err := range []error{
		store.CreatePerson(ctx, ann),
		store.CreatePerson(ctx, bo),
		store.CreatePerson(ctx, cai),
		store.CreateItem(ctx, milk),
		store.CreateItem(ctx, soap),
	} {
		if err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}

	debts := []struct {
		item   *models.Item
		by, to *models.Person
		amount float64
	}{
		{milk, ann, bo, 4.5},
		{soap, ann, cai, 3},
		{soap, bo, ann, 1.5},
	}
	for _, d := range debts {
		origin := &models.DebtOrigin{ItemID: d.item.ID, PurchasedBy: d.by.ID}
		mapping := &models.DebtMapping{OwedBy: d.by.ID, OwedTo: d.to.ID, Amount: d.amount}
		if err := store.CreateDebt(ctx, origin, mapping); err != nil {
			t.Fatalf("CreateDebt failed: %v", err)
		}
	}

	t.Run("TotalOwedPerPerson groups by debtor and omits the debt-free", func(t *testing.T) {
		totals, err := store.TotalOwedPerPerson(ctx)
		if err != nil {
			t.Fatalf("TotalOwedPerPerson failed: %v", err)
		}
		if len(totals) != 2 {
			t.Fatalf("Expected 2 debtors, got %d: %+v", len(totals), totals)
		}
		if totals[0].Name != "Ann Lee" || totals[0].Total != 7.5 {
			t.Errorf("Ann total = %+v, want {Ann Lee 7.5}", totals[0])
		}
		if totals[1].Name != "Bo Tan" || totals[1].Total != 1.5 {
			t.Errorf("Bo total = %+v, want {Bo Tan 1.5}", totals[1])
		}
		// Cai owes nothing and must not appear at all.
		for _, total := range totals {
			if total.Name == "Cai Wu" {
				t.Error("Debt-free person appeared in totals")
			}
		}
	})

	t.Run("UnresolvedDebtDetails joins people twice plus item", func(t *testing.T) {
		details, err := store.UnresolvedDebtDetails(ctx)
		if err != nil {
			t.Fatalf("UnresolvedDebtDetails failed: %v", err)
		}
		if len(details) != 3 {
			t.Fatalf("Expected 3 details, got %d", len(details))
		}
		first := details[0]
		if first.OriginID != 1 || first.Debtor != "Ann Lee" || first.Creditor != "Bo Tan" ||
			first.ItemName != "Milk" || first.Amount != 4.5 {
			t.Errorf("Unexpected first detail: %+v", first)
		}
		for i := 1; i < len(details); i++ {
			if details[i].OriginID < details[i-1].OriginID {
				t.Errorf("Details out of origin order: %+v", details)
			}
		}
	})

	t.Run("UnresolvedDebtDetails skips non-positive amounts", func(t *testing.T) {
		origin := &models.DebtOrigin{ItemID: milk.ID, PurchasedBy: cai.ID}
		mapping := &models.DebtMapping{OwedBy: cai.ID, OwedTo: ann.ID, Amount: 0}
		if err := store.CreateDebt(ctx, origin, mapping); err != nil {
			t.Fatalf("CreateDebt failed: %v", err)
		}

		details, err := store.UnresolvedDebtDetails(ctx)
		if err != nil {
			t.Fatalf("UnresolvedDebtDetails failed: %v", err)
		}
		for _, d := range details {
			if d.OriginID == origin.ID {
				t.Errorf("Zero-amount mapping appeared in details: %+v", d)
			}
		}
	})

	t.Run("NeedsByStatus follows the purchased flag", func(t *testing.T) {
		need := &models.HouseholdNeed{ItemID: soap.ID, Budget: 5, AssignedTo: bo.ID, DesiredDate: "2024-02-01"}
		if err := store.CreateNeed(ctx, need); err != nil {
			t.Fatalf("CreateNeed failed: %v", err)
		}

		pending, err := store.NeedsByStatus(ctx, false)
		if err != nil {
			t.Fatalf("NeedsByStatus failed: %v", err)
		}
		if len(pending) != 1 || pending[0].ItemName != "Soap" || pending[0].Budget != 5 {
			t.Fatalf("Unexpected pending needs: %+v", pending)
		}

		found, err := store.MarkNeedPurchased(ctx, need.ID)
		if err != nil {
			t.Fatalf("MarkNeedPurchased failed: %v", err)
		}
		if !found {
			t.Error("Expected found=true")
		}

		pending, _ = store.NeedsByStatus(ctx, false)
		bought, err := store.NeedsByStatus(ctx, true)
		if err != nil {
			t.Fatalf("NeedsByStatus failed: %v", err)
		}
		if len(pending) != 0 {
			t.Errorf("Need still pending after purchase: %+v", pending)
		}
		if len(bought) != 1 || !bought[0].Purchased {
			t.Errorf("Unexpected bought needs: %+v", bought)
		}
	})

	t.Run("MarkNeedPurchased is a no-op on a miss", func(t *testing.T) {
		found, err := store.MarkNeedPurchased(ctx, 99)
		if err != nil {
			t.Fatalf("MarkNeedPurchased failed: %v", err)
		}
		if found {
			t.Error("Expected found=false")
		}
	})
}

func TestCredentials(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sealed := []byte{0x01, 0x02, 0x03}
	id, err := store.CreateCredential(ctx, "wifi", sealed, 0)
	if err != nil {
		t.Fatalf("CreateCredential failed: %v", err)
	}
	if id == 0 {
		t.Error("Expected credential id to be assigned")
	}

	creds, err := store.ListCredentials(ctx)
	if err != nil {
		t.Fatalf("ListCredentials failed: %v", err)
	}
	if len(creds) != 1 {
		t.Fatalf("Expected 1 credential, got %d", len(creds))
	}
	if creds[0].Name != "wifi" || string(creds[0].Sealed) != string(sealed) {
		t.Errorf("Unexpected credential: %+v", creds[0])
	}
	if creds[0].PersonID != 0 {
		t.Errorf("Expected no person, got %d", creds[0].PersonID)
	}

	found, err := store.DeleteCredential(ctx, id)
	if err != nil {
		t.Fatalf("DeleteCredential failed: %v", err)
	}
	if !found {
		t.Error("Expected found=true")
	}
}
