// Package camilla 提供 CamillaDSP websocket 接口的最小客户端。
//
// CamillaDSP 的命令是一个 JSON 字符串 (无参数命令) ，应答是以命令名为键的对象：
//
//	-> "GetVolume"
//	<- {"GetVolume": {"result": "Ok", "value": -12.5}}
//
// 每次调用只建立一个连接、发送一条消息、读取一条应答，随后关闭连接。
//
// # 使用示例
//
//	client := camilla.NewClient(camilla.Options{Host: "127.0.0.1"})
//	vol, err := client.GetVolume(ctx, 1234)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(vol) // -12.5
//
// # 错误类型
//
// 所有错误都可以用 errors.Is 判断：
//   - ErrConnection        无法建立连接
//   - ErrConnectionClosed  对端在应答前关闭了连接
//   - ErrTimeout           超过 Options.Timeout
//   - ErrMalformedResponse 应答不是预期的 JSON 结构
package camilla
