// Command jsona-lsp is the JSONA language server: a separate binary from
// the jsona CLI, mirroring a CLI tool and its standalone language server
// binary.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"net"
	"os"

	"github.com/google/gops/agent"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

const lsName = "jsona-lsp"

var version = "0.0.1"

func main() {
	transport := flag.String("transport", "stdio", "stdio or tcp")
	address := flag.String("address", "127.0.0.1:9483", "listen address for the tcp transport")
	gops := flag.Bool("gops", false, "start a gops diagnostics agent")
	flag.Parse()

	if *gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			log.Printf("gops agent: %v", err)
		}
	}

	ctx := context.Background()
	switch *transport {
	case "tcp":
		runTCP(ctx, *address)
	default:
		runStdio(ctx)
	}
}

func runStdio(ctx context.Context) {
	stream := jsonrpc2.NewStream(&stdioReadWriteCloser{read: os.Stdin, write: os.Stdout})
	serve(ctx, stream)
}

func runTCP(ctx context.Context, address string) {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		log.Fatalf("jsona-lsp: %v", err)
	}
	defer ln.Close()
	conn, err := ln.Accept()
	if err != nil {
		log.Fatalf("jsona-lsp: %v", err)
	}
	defer conn.Close()
	serve(ctx, jsonrpc2.NewStream(conn))
}

func serve(ctx context.Context, stream jsonrpc2.Stream) {
	server := newServer()
	handler := protocol.ServerHandler(server, nil)
	conn := jsonrpc2.NewConn(stream)
	server.conn = conn
	conn.Go(ctx, handler)
	<-conn.Done()
}

type stdioReadWriteCloser struct {
	read  io.Reader
	write io.Writer
}

func (s *stdioReadWriteCloser) Read(p []byte) (int, error)  { return s.read.Read(p) }
func (s *stdioReadWriteCloser) Write(p []byte) (int, error) { return s.write.Write(p) }
func (s *stdioReadWriteCloser) Close() error                { return nil }
