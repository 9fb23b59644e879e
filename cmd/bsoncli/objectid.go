package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-kit/kit/log"
	"github.com/peterbourgon/ff/v3"

	"github.com/alex-klepa/mongo-ruby-driver-go/internal/idgen"
)

func runObjectID(args []string, logger log.Logger) error {
	flagset := flag.NewFlagSet("bsoncli objectid", flag.ExitOnError)
	count := flagset.Int("n", 1, "number of object ids to print")
	if err := ff.Parse(flagset, args, ff.WithEnvVarPrefix("BSONDRIVER")); err != nil {
		return wrapf(err, "parsing objectid flags")
	}

	gen := idgen.New(logger)
	ids, err := gen.NewIDs(*count)
	for _, id := range ids {
		fmt.Fprintln(os.Stdout, id.Hex())
	}
	if err != nil {
		return wrapf(err, "generating object ids")
	}
	return nil
}
