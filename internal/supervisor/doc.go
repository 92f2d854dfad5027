// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

/*
Package supervisor runs the long-lived parts of foodbot under a suture v4
supervisor tree.

The tree has two layers:

	RootSupervisor ("foodbot")
	├── APISupervisor ("api-layer")
	│   └── HTTPServerService
	└── MaintenanceSupervisor ("maintenance-layer")
	    └── ContextJanitorService

A crash in the janitor restarts only the maintenance layer; the HTTP server
keeps serving webhook callbacks. Supervisor events are logged through
sutureslog using the slog bridge from the logging package.

Service wrappers live in the services subpackage.
*/
package supervisor
