package rules

// Scene 校验场景标识，使用位运算支持场景组合
// 挂单流程固定为六步，每一步对应一个场景位；
// 规则声明时可用按位或把同一条规则挂到多个步骤上
type Scene uint64

// 挂单流程的六个步骤场景
const (
	SceneNone Scene = 0

	SceneStep1 Scene = 1 << iota // 车型/品牌/型号选择
	SceneStep2                   // 技术参数
	SceneStep3                   // 地理位置与寄送
	SceneStep4                   // 零部件明细
	SceneStep5                   // 定价与支付
	SceneStep6                   // 照片

	// SceneAll 所有步骤
	SceneAll Scene = SceneStep1 | SceneStep2 | SceneStep3 | SceneStep4 | SceneStep5 | SceneStep6
)

// Has 检查是否包含指定场景
func (s Scene) Has(scene Scene) bool {
	return s&scene != 0
}

// Add 添加场景
func (s Scene) Add(scene Scene) Scene {
	return s | scene
}

// Remove 移除场景
func (s Scene) Remove(scene Scene) Scene {
	return s &^ scene
}

// Step 返回场景对应的步骤序号（1-6），非单步场景返回 0
func (s Scene) Step() int {
	switch s {
	case SceneStep1:
		return 1
	case SceneStep2:
		return 2
	case SceneStep3:
		return 3
	case SceneStep4:
		return 4
	case SceneStep5:
		return 5
	case SceneStep6:
		return 6
	default:
		return 0
	}
}

// SceneForStep 返回步骤序号对应的场景，序号越界返回 SceneNone
func SceneForStep(step int) Scene {
	switch step {
	case 1:
		return SceneStep1
	case 2:
		return SceneStep2
	case 3:
		return SceneStep3
	case 4:
		return SceneStep4
	case 5:
		return SceneStep5
	case 6:
		return SceneStep6
	default:
		return SceneNone
	}
}
