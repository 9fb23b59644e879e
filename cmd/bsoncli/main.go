// Command bsoncli is the thin CLI glue around the bson codec: it reads
// JSON or raw BSON from stdin, round-trips it through the codec, and
// prints the result, plus an objectid subcommand for minting new IDs.
// It exists to give the ambient stack (ff, go-kit/log, pkg/errors) a
// concrete place to run, not to be a real mongo shell.
package main

import (
	"fmt"
	"os"

	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"

	"github.com/alex-klepa/mongo-ruby-driver-go/internal/driverlog"
)

func main() {
	logger := driverlog.NewCLILogger(false)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage())
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(os.Args[2:], logger)
	case "decode":
		err = runDecode(os.Args[2:], logger)
	case "objectid":
		err = runObjectID(os.Args[2:], logger)
	default:
		fmt.Fprintln(os.Stderr, usage())
		os.Exit(1)
	}

	if err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
}

func usage() string {
	return `bsoncli encode [--check-keys] [--move-id]   # JSON (stdin) -> BSON (stdout)
bsoncli decode                              # BSON (stdin) -> JSON (stdout)
bsoncli objectid [-n COUNT]                 # print COUNT new ObjectIds`
}

func wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrap(err, fmt.Sprintf(format, args...))
}
