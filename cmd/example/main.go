package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Mutaz-Awad/docusaurus"
	"github.com/Mutaz-Awad/docusaurus/pkg/chunknamer"
	"github.com/Mutaz-Awad/docusaurus/pkg/writecache"
)

func main() {
	fmt.Println("Starting build-output example")

	workDir, err := os.MkdirTemp("", "docusaurus-example-*")
	if err != nil {
		log.Fatalf("Failed to create work dir: %s", err)
	}
	defer os.RemoveAll(workDir)

	session, err := docusaurus.New(docusaurus.Config{
		OutDir:   filepath.Join(workDir, "build"),
		CacheDir: filepath.Join(workDir, ".cache"),
	})
	if err != nil {
		log.Fatalf("Failed to create build session: %s", err)
	}
	if err := session.Start(); err != nil {
		log.Fatalf("Failed to start build session: %s", err)
	}
	defer session.Close()

	name, err := session.GenChunkName("/docs/intro.js", chunknamer.Options{
		Mode: chunknamer.IDModeReadable,
	})
	if err != nil {
		log.Fatalf("Failed to name chunk: %s", err)
	}
	fmt.Printf("Chunk name for /docs/intro.js: %s\n", name)

	page := []byte("<html><body>chunk: " + name + "</body></html>")

	artifacts := []docusaurus.Artifact{
		{RelPath: "docs/intro/index.html", Content: page, Policy: writecache.PolicyUse},
		{RelPath: "assets/js/" + name + ".js", Content: []byte("console.log(1)"), Policy: writecache.PolicyUse},
	}

	// First pass writes both files, second pass is a full cache hit.
	for pass := 1; pass <= 2; pass++ {
		if err := session.GenerateAll(artifacts); err != nil {
			log.Fatalf("Failed to emit artifacts on pass %d: %s", pass, err)
		}
		fmt.Printf("Pass %d complete\n", pass)
	}

	emitted, err := session.ReadOutputHTMLFile("/docs/intro")
	if err != nil {
		log.Fatalf("Failed to read emitted page: %s", err)
	}
	fmt.Printf("Emitted page: %d bytes\n", len(emitted))
}
