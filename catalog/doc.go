// Package catalog provides in-memory book catalog and user directory gateways.
//
// Both can be seeded from a JSON document:
//
//	{
//	  "books": [{"id": "...", "title": "...", "author": "...", "isbn": "...", "available": true}],
//	  "users": [{"id": "...", "name": "...", "email": "...", "role": "READER", "active": true}]
//	}
package catalog
