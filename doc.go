// Package graphscene is the graph runtime for a graph-based desktop
// environment: every interactive entity is a node in a live 3D scene, and
// relationships between entities are edges.
//
// graphscene owns the authoritative Scene (nodes, edges, spatial index,
// change journal). The sibling packages layer on top of it:
//
// - github.com/graphscene/core/physics — per-tick force integration.
// - github.com/graphscene/core/layout — batch/incremental layout algorithms.
// - github.com/graphscene/core/edges — typed relationship management.
// - github.com/graphscene/core/clusters — grouping and boundary geometry.
// - github.com/graphscene/core/camera — first-person camera.
// - github.com/graphscene/core/render — instanced GPU render pipeline.
// - github.com/graphscene/core/runtime — the fixed-timestep update/render loop.
//
// # Quick start
//
//	scene := graphscene.NewScene()
//	id := scene.AddNode(graphscene.NewSceneNode(graphscene.NodeType{
// Kind: graphscene.NodeApplication,
// Application: &graphscene.ApplicationData{PID: 1234, Name: "term"},
//	}))
package graphscene
