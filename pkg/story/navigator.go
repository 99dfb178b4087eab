package story

// Navigator 页面分区导航
// 记录当前分区，跳转时钳制索引并忽略对当前分区的重复跳转
type Navigator struct {
	sections []string
	current  int
}

// NewNavigator 创建导航器，sections 为分区 ID（如 "home", "services"）
func NewNavigator(sections []string) *Navigator {
	cp := make([]string, len(sections))
	copy(cp, sections)
	return &Navigator{sections: cp}
}

// Current 当前分区索引
func (n *Navigator) Current() int {
	return n.current
}

// CurrentID 当前分区 ID，无分区时返回空字符串
func (n *Navigator) CurrentID() string {
	if len(n.sections) == 0 {
		return ""
	}
	return n.sections[n.current]
}

// Sections 分区 ID 列表
func (n *Navigator) Sections() []string {
	cp := make([]string, len(n.sections))
	copy(cp, n.sections)
	return cp
}

// NavigateTo 跳转到分区 index
// 返回钳制后的索引，以及是否发生了跳转
func (n *Navigator) NavigateTo(index int) (int, bool) {
	if len(n.sections) == 0 {
		return 0, false
	}
	if index < 0 {
		index = 0
	}
	if index > len(n.sections)-1 {
		index = len(n.sections) - 1
	}
	if index == n.current {
		return index, false
	}
	n.current = index
	return index, true
}

// Next 跳转到下一分区
func (n *Navigator) Next() (int, bool) {
	return n.NavigateTo(n.current + 1)
}

// Prev 跳转到上一分区
func (n *Navigator) Prev() (int, bool) {
	return n.NavigateTo(n.current - 1)
}

// IndexOf 根据 ID 查找分区索引（支持 "#contact" 形式的锚点）
func (n *Navigator) IndexOf(id string) int {
	if len(id) > 0 && id[0] == '#' {
		id = id[1:]
	}
	for i, s := range n.sections {
		if s == id {
			return i
		}
	}
	return -1
}

// Sync 根据外部滚动结果同步当前分区（不触发跳转）
func (n *Navigator) Sync(index int) {
	if index >= 0 && index < len(n.sections) {
		n.current = index
	}
}
