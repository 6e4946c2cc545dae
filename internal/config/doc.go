// Package config provides the durable port-forward registry for pfm.
//
// The registry is a single JSON file in the user's standard config
// directory (pfm/config.json) mapping forward ids to forward records.
// It is created on demand, including parent directories, and rewritten
// whole on every mutating command.
//
// # Registry Format
//
// The file holds one object with a "forwards" property:
//
//	{
//	  "forwards": {
//	    "user_at_server.com_8080_80": {
//	      "id": "user_at_server.com_8080_80",
//	      "host": "user@server.com",
//	      "local_port": 8080,
//	      "remote_port": 80,
//	      "pid": 12345
//	    }
//	  }
//	}
//
// # Identity
//
// A forward's id is derived from its (host, local_port, remote_port)
// tuple by ForwardID, with '@' rewritten to "_at_" so ids stay safe as
// shell tokens and file names. Ids are unique by construction; adding
// a forward with an existing id replaces the old record.
//
// # Indices
//
// User-visible indices come from the sorted view (ids ascending) and
// are recomputed on every invocation. They are never stored and are
// only stable within a single command.
//
// # Concurrency
//
// There is no cross-invocation locking. Two concurrent pfm processes
// writing the registry produce last-writer-wins; the cleanup command
// reconciles the registry with observable process state afterwards.
package config
