// Package cluster supplies the "cluster self" state the demo banner reads.
//
// The banner only needs one field, demo_uri. Rather than reaching into a
// global store, callers obtain a *Self from a Source and pass DemoURI(self)
// to the component:
//
//	src := cluster.NewGraphQLSource("http://localhost:8081")
//	self, err := src.Self(ctx)
//	if err != nil {
//	    return err
//	}
//	uri := cluster.DemoURI(self)
//
// StaticSource serves a fixed value for the CLI --uri flag, the config file
// and tests.
package cluster
