// Package server exposes split and join over HTTP.
//
// POST /split takes a multipart form with "pieces" and "file" and answers with a zip of the
// key, the manifest and the chunks. POST /join takes the parts as repeated "files" fields,
// stages them in a temporary directory that is removed on every exit path, and answers with
// the restored file.
package server
