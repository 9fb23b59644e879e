package main

import (
	"flag"
	"io"
	"os"

	"github.com/go-kit/kit/log"
	"github.com/peterbourgon/ff/v3"

	"github.com/alex-klepa/mongo-ruby-driver-go/bson"
)

func runDecode(args []string, logger log.Logger) error {
	flagset := flag.NewFlagSet("bsoncli decode", flag.ExitOnError)
	if err := ff.Parse(flagset, args, ff.WithEnvVarPrefix("BSONDRIVER")); err != nil {
		return wrapf(err, "parsing decode flags")
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return wrapf(err, "reading stdin")
	}

	doc, err := bson.Deserialize(bson.BSON(input))
	if err != nil {
		return wrapf(err, "deserializing document")
	}

	out, err := documentToJSON(doc)
	if err != nil {
		return wrapf(err, "encoding output json")
	}

	if _, err := os.Stdout.Write(out); err != nil {
		return wrapf(err, "writing json output")
	}
	_, err = os.Stdout.Write([]byte("\n"))
	return err
}
