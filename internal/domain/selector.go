package domain

import (
	"strconv"
	"strings"
)

type Alias string

const (
	AliasStable Alias = "stable"
	AliasLatest Alias = "latest"
)

// Selector identifies a schema either by explicit version or by alias.
// A selector with an unknown alias resolves to version 0.
type Selector struct {
	Alias   Alias
	Version int
}

func VersionSelector(version int) Selector {
	return Selector{Version: version}
}

func AliasSelector(alias Alias) Selector {
	return Selector{Alias: alias}
}

func (s Selector) IsAlias() bool {
	return s.Alias != ""
}

func (s Selector) String() string {
	if s.IsAlias() {
		return string(s.Alias)
	}
	return strconv.Itoa(s.Version)
}

// ParseSelector accepts "stable", "latest", "13" and "0.13". Aliases match
// exactly, so "Latest" or " stable" are unknown aliases like anything else.
func ParseSelector(value string) Selector {
	switch Alias(value) {
	case AliasStable:
		return AliasSelector(AliasStable)
	case AliasLatest:
		return AliasSelector(AliasLatest)
	}

	digits := strings.TrimPrefix(value, VersionPrefix)
	if version, err := strconv.Atoi(digits); err == nil {
		return VersionSelector(version)
	}
	return AliasSelector(Alias(value))
}
