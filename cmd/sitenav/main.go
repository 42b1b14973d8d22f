// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command sitenav is the operator CLI of the site directory.
package main

import "github.com/taibuivan/sitenav/internal/cli"

func main() {
	cli.Execute()
}
