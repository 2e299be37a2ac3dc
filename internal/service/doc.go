// Package service implements the business logic layer for the PiensaPeru API.
//
// Every entity (Calification, Militant, PoliticalParty) gets the same CRUD
// template: look the entity up, branch on whether it exists, mutate it and
// let the unit of work persist the staged changes. Operations never return
// an error. They answer with a model.Response envelope whose Err field keeps
// the cause for status mapping.
//
// # Repository Interfaces
//
// Services define the repository and unit of work contracts they consume,
// so the SurrealDB and PostgreSQL implementations are interchangeable and
// tests can use function-field mocks.
//
// # Example Usage
//
//	svc := NewMilitantService(MilitantServiceConfig{
//	    Repo:       militantRepository,
//	    UnitOfWork: scope,
//	    Logger:     logger,
//	})
//	resp := svc.GetByID(ctx, 1)
//	if !resp.Success {
//	    // resp.Message is "Militant not found"
//	}
package service
