package layout

// Distribute partitions items into ordered pages by greedy first-fit.
//
// 约束（顺序即权威，渲染器无权改写分页）：
//   - 条目顺序保持不变，不跨页拆分，不丢弃，不重复。
//   - 空输入返回恰好一个空页，下游始终有页面容器可画。
//   - 单条超出 maxHeight 的条目独占一页并允许溢出；溢出由 Frame
//     检测上报，不在这里阻止。内容完整性优先于高度合规。
//
// 纯函数：同样的输入得到逐字节一致的输出。
func Distribute[T any](items []T, maxHeight int, estimate func(T) int) [][]T {
	pages := make([][]T, 0, 1)
	currentPage := make([]T, 0, len(items))
	currentHeight := 0

	for _, item := range items {
		h := estimate(item)
		if currentHeight+h > maxHeight && len(currentPage) > 0 {
			pages = append(pages, currentPage)
			currentPage = []T{item}
			currentHeight = h
			continue
		}
		currentPage = append(currentPage, item)
		currentHeight += h
	}

	if len(currentPage) > 0 || len(pages) == 0 {
		pages = append(pages, currentPage)
	}

	return pages
}
