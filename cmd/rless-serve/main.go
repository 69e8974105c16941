package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/user/rless/internal/server"
)

func main() {
	addrFlag := flag.String("addr", ":8844", "Listen address")
	rootFlag := flag.String("root", ".", "Directory to serve files from")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rless-serve [-addr :8844] [-root dir]\n")
	}
	flag.Parse()

	srv := server.New(*rootFlag)
	defer srv.Close()

	fmt.Fprintf(os.Stderr, "serving %s on %s\n", *rootFlag, *addrFlag)
	if err := http.ListenAndServe(*addrFlag, srv.Handler()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
