package urls

import "strings"

// Client library homepages for the connect walkthroughs

// TarantoolPython is the Python connector used by the Python walkthrough.
const TarantoolPython = "https://github.com/tarantool/tarantool-python"

// TarantoolPHP is the pure PHP client used by the PHP walkthrough.
const TarantoolPHP = "https://github.com/tarantool-php/client"

var clientLibraries = map[string]string{
	"python": TarantoolPython,
	"php":    TarantoolPHP,
}

// ClientLibrary returns the homepage of the client library a walkthrough
// uses, matching language case-insensitively. Unknown languages return "".
func ClientLibrary(language string) string {
	return clientLibraries[strings.ToLower(language)]
}
