// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command galleryinfo converts upstream gallery payloads into ComicInfo.xml
// files without a running server.
//
// # Usage
//
//	galleryinfo convert gallery.json                 # document on stdout
//	galleryinfo convert --out ./library a.json b.json
//	curl -s .../api/gallery/177013 | galleryinfo convert -
//	galleryinfo version
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
