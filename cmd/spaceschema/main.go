package main

import (
	"os"

	"github.com/osvaldoandrade/spaceschema/pkg/spaceschema"
)

func main() {
	os.Exit(spaceschema.Execute())
}
