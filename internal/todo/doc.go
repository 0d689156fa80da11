// Package todo owns the task list: task records, the active status filter,
// and persistence of the list to a key-value storage.
//
// The persisted value under the "tasks" key is a JSON array:
//
//	[
//	  {
//	    "id": "0192f3c4-5b6a-7c8d-9e0f-112233445566",
//	    "title": "Buy milk",
//	    "description": "2 liters",
//	    "createdAt": "2024-01-01T12:00:00Z",
//	    "status": "pending"
//	  }
//	]
//
// # Task Status Values
//
//   - "pending": Task is open (initial state)
//   - "completed": Task is done; there is no transition back
//
// # Validation
//
// Decoding runs two layers of checks:
//
// 1. JSON Schema validation against the embedded tasks.schema.json
// (type checking, required fields, status enum, date-time format,
// additionalProperties).
//
// 2. Minimal checks that a schema cannot express, such as duplicate ids and
// whitespace-only titles. These always run.
//
// A value that fails either layer is treated by Store.Load as an empty list.
//
// # File Format
//
// Encoded lists use 2-space indentation and a trailing newline.
package todo
