package main

import (
	"flag"
	"io"
	"os"

	"github.com/go-kit/kit/log"
	"github.com/peterbourgon/ff/v3"

	"github.com/alex-klepa/mongo-ruby-driver-go/bson"
)

func runEncode(args []string, logger log.Logger) error {
	flagset := flag.NewFlagSet("bsoncli encode", flag.ExitOnError)
	var (
		checkKeys = flagset.Bool("check-keys", false, "reject keys starting with '$' or containing '.'")
		moveID    = flagset.Bool("move-id", false, "move an \"_id\" field to the front of the top-level document")
	)
	if err := ff.Parse(flagset, args, ff.WithEnvVarPrefix("BSONDRIVER")); err != nil {
		return wrapf(err, "parsing encode flags")
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return wrapf(err, "reading stdin")
	}

	m, err := jsonToMap(input)
	if err != nil {
		return wrapf(err, "decoding input json")
	}

	out, err := bson.Serialize(m.ToDocument(), *checkKeys, *moveID)
	if err != nil {
		return wrapf(err, "serializing document")
	}

	if _, err := os.Stdout.Write(out); err != nil {
		return wrapf(err, "writing bson output")
	}
	return nil
}
