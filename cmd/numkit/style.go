package main

import "github.com/san-kum/numkit/internal/viz"

func heading(s string) string { return viz.Title.Render(s) }
