package domain

// domain package contains the Domain Models and Interfaces for the mlrun control plane.
//
// `domain/mlrun` package exposes the root object for the application.
// Entrypoints should instantiate the Mlrun object and use it to interact with the domain.
//
// `domain/ENTITY.go` has high-level entities (Domain Model types).
// For example, `domain/project.go` contains the `ProjectSummary` entity.
//
// `domain/ENTITY` directory contains the "physical" representation of the entity in the RDB.
// `domain/ENTITY/db/interface.go` exposes the client interface to handle the entity in DB.
//
// # Entities
//
// - `pagination`: resumable list queries. A client walking a long listing page by page
// holds a Token, and the server keeps a PaginationRecord per token so that later pages
// are served with the same method and parameters as the first one.
// Stale records are evicted by the "cache janitor loop" (cmd/loops).
//
// - `project`: named workspaces grouping runs and artifacts. Listed via pagination.
//
// - `run`: executions of ML tasks and their records. Listed via pagination,
// optionally filtered by the caller's permissions.
