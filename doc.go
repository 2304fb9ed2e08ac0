package jsonshape

// Package jsonshape infers structural types from JSON documents.
//
// - Every Universe interns types canonically: two TypeIDs are equal iff the shapes are equal
// - Documents merge into one schema (compounds member-wise, anything else into unions)
// - Check tests whether one type is acceptable where another is expected
// - Parsing accepts comments and trailing commas and reports line/column on failure
//
// Design policy:
// - Keep only public APIs in the root package; storage (hash table, pooled store) lives under internal/.
// - Name interning lives in names/, renderers in printer/ and jsonschema/, the CLI under cmd/jsonshape.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  u := jsonshape.New()
//  c, err := u.LoadJSONDir(ctx, "testdata")
//  schema := c.Schema(u)
//  res := u.Check(schema, expected)
//  if !res.Passed { return res.Err() }
//
// A Universe is not safe for concurrent use; give each goroutine its own.
