package commands

import (
	"log/slog"

	"tide/internal/command"
	"tide/internal/config"
)

// AddShellCommands registers every builtin on the global frame.
func AddShellCommands(ns command.NameSpace) {
	configPath, err := config.DefaultPath()
	if err != nil {
		slog.Warn("config path unavailable, alias --save disabled", slog.Any("error", err))
	}

	whole := []command.WholeStream{
		&Alias{ConfigPath: configPath},
		&Def{},
		&Echo{},
		&Ls{},
		&First{},
		&Seq{},
		&Sum{},
		&Db{},
		&Help{},
	}
	for _, ws := range whole {
		ns.AddCommand(ws.Name(), command.FromWholeStream(ws))
	}

	perItem := []command.PerItem{
		&StrUpcase{},
	}
	for _, pi := range perItem {
		ns.AddCommand(pi.Name(), command.FromPerItem(pi))
	}
}
