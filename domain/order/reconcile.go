package order

// Plan lists the writes that turn an order's active items into a desired line set.
type Plan struct {
	// Update holds kept items whose quantity changed, already carrying the new quantity.
	Update []Item
	// Remove holds items whose product is no longer wanted.
	Remove []Item
	// Insert holds wanted lines with no existing item.
	Insert []Line
}

// Empty reports whether the plan changes nothing.
func (p Plan) Empty() bool {
	return len(p.Update) == 0 && len(p.Remove) == 0 && len(p.Insert) == 0
}

// Reconcile diffs the active items of an order against the desired lines.
// Items are matched by product id. Inserts keep the order of desired.
func Reconcile(existing []Item, desired []Line) Plan {
	want := make(map[uint]int, len(desired))
	for _, l := range desired {
		want[l.ProductID] = l.Quantity
	}

	var plan Plan
	matched := make(map[uint]bool, len(existing))
	for _, it := range existing {
		qty, ok := want[it.ProductID]
		if !ok || matched[it.ProductID] {
			plan.Remove = append(plan.Remove, it)
			continue
		}
		matched[it.ProductID] = true
		if it.Quantity != qty {
			it.Quantity = qty
			plan.Update = append(plan.Update, it)
		}
	}

	for _, l := range desired {
		if matched[l.ProductID] {
			continue
		}
		matched[l.ProductID] = true
		plan.Insert = append(plan.Insert, l)
	}
	return plan
}
