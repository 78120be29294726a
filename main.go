package main

import (
	"context"

	"adopr/cmd"
)

func main() {
	ctx := context.Background()
	cmd.Execute(ctx)
}
