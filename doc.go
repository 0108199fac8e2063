// Package plantdb defines the core types shared across the plant catalog: the plant record,
// its identifier, the external store port, coded errors, logging and retry helpers.
//
// The catalog keeps every plant in an in-memory AVL index (package avl) ordered by lower-cased
// common name. The index is rebuilt from a full snapshot of the external plant table and patched
// after each insert or delete that the table acknowledged. Concrete tables live in subpackages
// inmemory, redis, cassandra and aws_s3; package catalog orchestrates them and package restapi
// surfaces the catalog over HTTP.
package plantdb
