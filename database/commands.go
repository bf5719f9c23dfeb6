package database

var defaultDatabase = New(builtinCommands())

// builtinCommands returns the built-in command table. This is a practical
// subset of the Arma 3 command set; IsValidIdentifier accepts
// identifier-shaped names regardless, so an absent command only matters for
// arity queries and constant folding.
func builtinCommands() map[string]Flags {
	table := map[string]Flags{}

	add := func(flags Flags, names ...string) {
		for _, name := range names {
			table[name] |= flags
		}
	}

	// Operators.
	add(Binary,
		"+", "-", "*", "/", "%", "^", "mod", "atan2", "min", "max",
		"==", "!=", "<", ">", "<=", ">=", ">>",
		"&&", "||", "and", "or", "else",
	)
	add(Unary, "-", "+", "!", "not")

	// Side constants fold at compile time.
	add(Nular|Constant,
		"west", "east", "resistance", "civilian", "independent",
		"blufor", "opfor", "sideambientlife", "sideempty", "sideenemy",
		"sidefriendly", "sidelogic", "sideunknown",
	)

	// Common nulars.
	add(Nular,
		"player", "time", "servertime", "missionname", "missionstart",
		"allunits", "allplayers", "allgroups", "vehicles", "entities",
		"worldname", "daytime", "date", "isserver", "isdedicated",
		"ismultiplayer", "hasinterface", "cursortarget", "cursorobject",
		"objnull", "grpnull", "controlnull", "displaynull", "locationnull",
		"tasknull", "teammembernull", "confignull", "scriptnull",
		"pi", "linebreak", "endl", "nil", "diag_ticktime", "diag_frameno",
	)

	// Common unaries.
	add(Unary,
		"abs", "acos", "asin", "atan", "ceil", "cos", "deg", "exp",
		"floor", "ln", "log", "rad", "random", "round", "sin", "sqrt",
		"tan", "sleep", "uisleep", "hint", "hintsilent", "systemchat",
		"str", "format", "tolower", "toupper", "tostring", "toarray",
		"count", "reverse", "selectrandom", "flatten", "parsenumber",
		"parsetext", "isnil", "isnull", "call", "spawn", "compile",
		"compilefinal", "preprocessfile", "preprocessfilelinenumbers",
		"loadfile", "execvm", "titletext", "cuttext", "publicvariable",
		"private", "params", "units", "leader", "group", "side", "name",
		"typeof", "velocity", "getpos", "getposatl", "getposasl",
		"position", "visibleposition", "alive", "damage", "captive",
		"vehicle", "crew", "driver", "gunner", "commander", "backpack",
		"uniform", "vest", "headgear", "goggles", "weapons", "magazines",
		"items", "assigneditems", "deletevehicle", "deletegroup",
		"comment", "diag_log",
	)

	// Common binaries.
	add(Binary,
		"select", "set", "pushback", "pushbackunique", "append", "find",
		"in", "apply", "foreach", "foreachreversed", "then", "do",
		"exitwith", "from", "to", "step", "while", "waituntil", "catch",
		"call", "spawn", "execvm", "params", "param",
		"setvariable", "getvariable",
		"setpos", "setposatl", "setposasl", "setdir", "setvelocity",
		"setdamage", "setcaptive", "addeventhandler", "removeeventhandler",
		"additem", "removeitem", "addweapon", "removeweapon",
		"addmagazine", "removemagazine", "knowsabout", "distance",
		"distance2d", "near", "nearestobjects", "createvehicle",
		"createunit", "creategroup", "joinsilent", "join", "say", "say3d",
		"playsound", "vectoradd", "vectordiff", "vectordotproduct",
		"vectorcrossproduct", "vectormultiply", "vectordistance",
	)

	// getVariable also has a unary form taking [namespace, name].
	add(Unary, "getvariable")

	return table
}
