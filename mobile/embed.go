//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// go:embed 只能嵌入本目录下的文件，构建前需要把资源复制到此目录：
//
//	mkdir -p mobile/assets mobile/data
//	cp -r assets/shaders mobile/assets/
//	cp data/intro.yaml mobile/data/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed assets/shaders
var assetsFS embed.FS

//go:embed data/intro.yaml
var dataFS embed.FS
