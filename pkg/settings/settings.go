// Package settings 持久化用户偏好
//
// 偏好通过 gdata 以 YAML 形式保存在平台相关的用户数据目录中。
// gdata 管理器为 nil 时进入降级模式：偏好只保存在内存中。
package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Preferences 用户偏好
type Preferences struct {
	ReducedMotion    bool `yaml:"reducedMotion"`    // 减少动态效果：关闭平滑滚动与分节吸附，粒子减速
	SmoothScroll     bool `yaml:"smoothScroll"`     // 弹簧平滑滚动
	ParticlesEnabled bool `yaml:"particlesEnabled"` // 背景粒子
}

// DefaultPreferences 返回默认偏好
func DefaultPreferences() *Preferences {
	return &Preferences{
		ReducedMotion:    false,
		SmoothScroll:     true,
		ParticlesEnabled: true,
	}
}

// SmoothScrollActive 平滑滚动是否实际生效（减少动态效果优先）
func (p Preferences) SmoothScrollActive() bool {
	return p.SmoothScroll && !p.ReducedMotion
}

// 存储路径常量
const (
	prefsObject   = "preferences"
	prefsProperty = "global"
)

// Manager 偏好管理器
type Manager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
	prefs        *Preferences
}

// NewManager 创建偏好管理器并尝试加载已保存的偏好
// 加载失败不是致命错误，使用默认偏好
func NewManager(gdataManager *gdata.Manager) *Manager {
	m := &Manager{
		gdataManager: gdataManager,
		prefs:        DefaultPreferences(),
	}
	if err := m.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load preferences: %v (using defaults)", err)
	}
	return m
}

// Open 打开应用的 gdata 存储
// 失败时返回 nil 管理器和错误，调用方可用 nil 进入降级模式
func Open(appName string) (*gdata.Manager, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata storage for %s: %w", appName, err)
	}
	return manager, nil
}

// Load 从 gdata 加载偏好，未保存过时使用默认值
func (m *Manager) Load() error {
	if m.gdataManager == nil {
		m.prefs = DefaultPreferences()
		return nil
	}

	if !m.gdataManager.ObjectPropExists(prefsObject, prefsProperty) {
		m.prefs = DefaultPreferences()
		return nil
	}

	data, err := m.gdataManager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		m.prefs = DefaultPreferences()
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	// 从默认值开始反序列化，旧版本缺失的字段保持默认
	loaded := DefaultPreferences()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		m.prefs = DefaultPreferences()
		return fmt.Errorf("failed to unmarshal preferences: %w", err)
	}

	m.prefs = loaded
	log.Printf("[SettingsManager] Preferences loaded: %+v", *loaded)
	return nil
}

// Save 保存偏好，降级模式下直接返回 nil
func (m *Manager) Save() error {
	if m.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(m.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := m.gdataManager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	log.Printf("[SettingsManager] Preferences saved")
	return nil
}

// Preferences 返回当前偏好的副本
func (m *Manager) Preferences() Preferences {
	return *m.prefs
}

// Persistent 是否能持久化
func (m *Manager) Persistent() bool {
	return m.gdataManager != nil
}

// SetReducedMotion 设置减少动态效果
// 仅修改内存，需调用 Save() 持久化
func (m *Manager) SetReducedMotion(enabled bool) {
	m.prefs.ReducedMotion = enabled
}

// SetSmoothScroll 设置平滑滚动
func (m *Manager) SetSmoothScroll(enabled bool) {
	m.prefs.SmoothScroll = enabled
}

// SetParticlesEnabled 设置背景粒子开关
func (m *Manager) SetParticlesEnabled(enabled bool) {
	m.prefs.ParticlesEnabled = enabled
}
