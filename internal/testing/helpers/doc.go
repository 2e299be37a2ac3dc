// Package helpers provides HTTP and assertion utilities for API tests.
//
// # Requests
//
// Build requests fluently and serve them against a handler:
//
//	jwtHelper := helpers.NewJWTHelper(t)
//	rr := helpers.NewRequest(t, http.MethodPost, "/v1/militants").
//	    WithBody(body).
//	    WithAdmin(jwtHelper).
//	    Do(server)
//
// # Assertions
//
//	helpers.AssertStatus(t, rr, http.StatusCreated)
//	helpers.AssertValidationError(t, rr, "first_name")
//	militant := helpers.DecodeData[model.Militant](t, rr)
//	helpers.AssertRecordExists(t, tdb.DB, "militant", militant.ID)
package helpers
