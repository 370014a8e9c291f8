// Package project defines the project record model shared by the store, the
// service and the picker, together with the two pure transforms the picker
// runs on every render: status classification and list ordering.
//
// # Records
//
// A Record is one registered project. Its creation sub-state is a tagged
// variant (CreatingProgress) produced at the store boundary; callers never
// inspect the raw persisted JSON.
//
//	coll, _ := svc.List(ctx)
//	for _, rec := range project.Sort(project.Records(coll)) {
//	    fmt.Println(rec.Name, project.Classify(rec))
//	}
//
// # Status
//
// Classify maps a record to StatusProgress, StatusFailure or StatusSuccess.
// It is total: unknown creation states are reported as in progress.
//
// # Ordering
//
// Sort puts the active project first, then newer projects before older ones.
// Records without a timestamp carry DefaultCreatedAt and end up last. Equal
// records keep their input order.
package project
