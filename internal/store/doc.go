// Package store persists the project registry in a local SQLite database.
//
// The store is the only writer of project records. It owns the persisted
// shape of a project's creation job and converts it to and from the
// project.CreatingProgress variant, so nothing above this package inspects
// raw JSON.
//
//	st, err := store.Open(filepath.Join(paths.StateDir, "projects.db"))
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	coll, err := st.List(ctx)
//
// Records are listed in registration order; that order is what the picker's
// stable sort falls back to for ties.
package store
