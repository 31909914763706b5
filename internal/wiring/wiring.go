// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/SParksLz/rez/internal/adapters/config"
	_ "github.com/SParksLz/rez/internal/adapters/logger"
	_ "github.com/SParksLz/rez/internal/adapters/packages"
	_ "github.com/SParksLz/rez/internal/adapters/shell"
	// Register app nodes.
	_ "github.com/SParksLz/rez/internal/app"
)
