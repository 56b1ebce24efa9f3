// Package dag schedules detector passes over a conversation model in
// dependency order.
//
// A pipeline names detectors and the detectors each one depends on. It is
// resolved into a Graph whose nodes run level by level. Every detector
// mutates the shared model, so nodes run one at a time: levels in order,
// names sorted within a level. The first failing node stops the run.
//
//	p, _ := dag.LoadPipeline("default", "pipelines/default.yaml")
//	g, _ := dag.ResolvePipeline(p, registry, nil)
//	state := dag.NewModelState(model)
//	result, err := (&dag.Engine{}).Execute(ctx, g, state)
package dag
