// Package config provides configuration management for cargosweep.
//
// Configuration comes from three layers, later layers winning:
// built-in defaults, the optional .cargosweep YAML file (searched in the
// current directory and then the home directory), and CLI flags.
//
// The package also resolves the XDG data directory used for the run
// history database.
package config
