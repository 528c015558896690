package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	existing := []Item{
		{ID: 10, ProductID: 1, Quantity: 2},
		{ID: 11, ProductID: 2, Quantity: 3},
	}

	tests := []struct {
		name       string
		desired    []Line
		wantUpdate map[uint]int
		wantRemove []uint
		wantInsert []Line
	}{
		{
			name:       "keep, remove and insert",
			desired:    []Line{{ProductID: 1, Quantity: 2}, {ProductID: 3, Quantity: 1}},
			wantRemove: []uint{11},
			wantInsert: []Line{{ProductID: 3, Quantity: 1}},
		},
		{
			name:       "quantity change updates in place",
			desired:    []Line{{ProductID: 1, Quantity: 5}, {ProductID: 2, Quantity: 3}},
			wantUpdate: map[uint]int{10: 5},
		},
		{
			name:    "identical set changes nothing",
			desired: []Line{{ProductID: 2, Quantity: 3}, {ProductID: 1, Quantity: 2}},
		},
		{
			name:       "full replacement",
			desired:    []Line{{ProductID: 7, Quantity: 1}},
			wantRemove: []uint{10, 11},
			wantInsert: []Line{{ProductID: 7, Quantity: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Reconcile(existing, tt.desired)

			gotUpdate := map[uint]int{}
			for _, it := range plan.Update {
				gotUpdate[it.ID] = it.Quantity
			}
			var gotRemove []uint
			for _, it := range plan.Remove {
				gotRemove = append(gotRemove, it.ID)
			}

			if tt.wantUpdate == nil {
				assert.Empty(t, gotUpdate)
			} else {
				assert.Equal(t, tt.wantUpdate, gotUpdate)
			}
			assert.Equal(t, tt.wantRemove, gotRemove)
			assert.Equal(t, tt.wantInsert, plan.Insert)
		})
	}
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	existing := []Item{{ID: 1, ProductID: 1, Quantity: 2}}

	plan := Reconcile(existing, []Line{{ProductID: 1, Quantity: 9}})

	assert.Equal(t, 2, existing[0].Quantity)
	assert.Equal(t, 9, plan.Update[0].Quantity)
}

func TestDuplicateProducts(t *testing.T) {
	lines := []Line{{ProductID: 1}, {ProductID: 2}, {ProductID: 1}, {ProductID: 1}, {ProductID: 2}}
	assert.Equal(t, []uint{1, 2}, DuplicateProducts(lines))
	assert.Empty(t, DuplicateProducts([]Line{{ProductID: 1}, {ProductID: 2}}))
}
